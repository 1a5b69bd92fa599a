// Package nfts compiles NFT search filters into subgraph queries.
//
// Compilation is pure: it performs no I/O and reads nothing but its input and the
// clock, so it is safe for concurrent use. Executing the query is up to the caller.
package nfts
