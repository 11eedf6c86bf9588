/*
Package imap implements the client side response parser of IMAP: it turns the byte stream
received from a server into tagged, untagged and continuation responses made of atoms,
quoted strings, nested lists and literals.

Literals are not buffered. When the tokenizer meets a literal announcement, the response
read so far is handed back together with a stream over exactly the announced number of
bytes. The caller consumes that stream and calls Resume to continue with the same line.
A caller that does not consume a literal does not corrupt the stream position: any further
read through the parser first discards what is left of it.

On any failure the parser consumes at most four further bytes of the current line and then
dumps its Recorder, so that the bytes surrounding the failure show up in the logs. Literal
payloads are never recorded.

Please refer to https://tools.ietf.org/html/rfc3501#section-9 for the formal syntax.
*/
package imap
