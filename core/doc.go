// Package core provides low-level RTF tokenizing primitives.
//
// This package turns a raw RTF byte stream into the primitive tokens that the
// parser package consumes: group delimiters, control words, control symbols,
// decoded text runs and binary payload requests.
//
// # Tokens
//
// The [Lexer] produces [Token] values of the following types:
//
//   - [TokenGroupStart] and [TokenGroupEnd] - the braces { and }
//   - [TokenControlWord] - a backslash followed by letters and an optional
//     signed numeric parameter (e.g. \fonttbl, \f0, \li-720)
//   - [TokenControlSymbol] - a backslash followed by one non-letter (e.g. \*, \~)
//   - [TokenText] - a run of literal text with escapes (\\, \{, \}, \'hh, \uN)
//     already decoded to UTF-8
//   - [TokenBinary] - a \binN request; the caller copies the payload with
//     [Lexer.CopyBinary] before asking for the next token
//
// # Text Decoding
//
// Literal 8-bit bytes and \'hh escapes are decoded through the active code
// page (Windows-1252 by default, see [Lexer.SetCodePage]). Unicode escapes
// honour the fallback count set with [Lexer.SetUnicodeSkip], so the
// replacement characters that follow a \uN escape never reach the text.
//
// # Errors
//
// Lexical violations are reported as [*ParseError] values whose kind is
// [ErrMalformedToken]. The other error kinds are raised by the parser but are
// declared here so that both layers share one vocabulary.
package core
