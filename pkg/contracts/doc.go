// Package contracts defines the narrow interfaces between the marketplace core and
// its external collaborators.
//
// Interfaces:
//   - Subgraph: GraphQL query execution against an indexed data source
//   - CacheProvider: health and shutdown of an external store backing the registry
package contracts
