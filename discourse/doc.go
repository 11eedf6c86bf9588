/*
Package discourse keeps the most recent lines exchanged with an IMAP server in a fixed-size
ring buffer so that they can be written to the log when parsing a response fails.
*/
package discourse
