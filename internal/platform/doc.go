// Package platform papers over operating system differences in the
// filesystem operations used while materializing a project. On Unix systems
// permission bits are applied directly; on Windows they are skipped because
// Windows does not support Unix-style permission bits.
package platform
