// Package mem allocates Go memory that is handed to C functions as a struct
// buffer.
package mem
