// Package compound reads Outlook message files, which are OLE2 compound
// binary files. A compound file is a small file system of named streams
// organized in storages. An Outlook message keeps each property of the mail
// in its own stream, named after the property tag and type, and each
// attachment in its own storage.
//
// Open loads every stream of the file into memory and closes it. The
// accessors of Message then decode the streams they need. Missing streams
// are reported as absent values, never as errors.
package compound
