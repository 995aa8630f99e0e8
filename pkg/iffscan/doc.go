// SPDX-License-Identifier: MPL-2.0

// Package iffscan walks the top-level chunks of an in-memory IFF-family file.
//
// It decodes each 8-byte chunk header (identifier plus 32-bit size, in either
// byte order), builds an iff.Chunk over the remaining bytes, and advances past
// the payload and its pad byte. Groups (FORM, LIST, CAT, ...) are reported with
// their type identifier but are not descended into.
package iffscan
