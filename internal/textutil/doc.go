// Package textutil provides token-based text fingerprinting and similarity.
//
// Fingerprints are term-frequency vectors compared with cosine similarity.
// The trimming stage uses them to confirm that an original recording and its
// diarized counterpart carry the same speech before synchronizing their cut
// points; a low score usually means the files were mispaired. Tokenization
// lowercases text, splits on non-alphanumeric characters, and filters tokens
// shorter than 3 characters.
package textutil
