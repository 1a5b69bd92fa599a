package errors

import "net/http"

// Codes returned in the "code" member of error responses.
const (
	// CodeValidation marks a request the compiler or registry cannot accept:
	// a malformed address, an unknown enum value, an out of range window.
	CodeValidation = "VALIDATION_ERROR"

	// CodeNotFound marks a lookup with no match, such as an address that is
	// not a registered contract.
	CodeNotFound = "NOT_FOUND"

	// CodeTimeout marks a subgraph or store call that ran out of time.
	CodeTimeout = "TIMEOUT"

	// CodeSubgraphUnavailable marks a subgraph that could not be reached or
	// answered with something other than a GraphQL response.
	CodeSubgraphUnavailable = "SUBGRAPH_UNAVAILABLE"

	// CodeSubgraphRejected marks a GraphQL response carrying errors. The
	// subgraph is up; the query itself was refused.
	CodeSubgraphRejected = "SUBGRAPH_REJECTED"

	// CodeStoreUnavailable marks a failed read or write of a registry store.
	CodeStoreUnavailable = "STORE_UNAVAILABLE"

	// CodeInternal is used for anything else.
	CodeInternal = "INTERNAL"
)

var codeStatus = map[string]int{
	CodeValidation:          http.StatusBadRequest,
	CodeNotFound:            http.StatusNotFound,
	CodeTimeout:             http.StatusGatewayTimeout,
	CodeSubgraphUnavailable: http.StatusBadGateway,
	CodeSubgraphRejected:    http.StatusBadGateway,
	CodeStoreUnavailable:    http.StatusServiceUnavailable,
}

// httpStatus maps a code to the status the gateway answers with.
func httpStatus(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// transient lists the codes where the same call may succeed later.
func transient(code string) bool {
	switch code {
	case CodeTimeout, CodeSubgraphUnavailable, CodeStoreUnavailable:
		return true
	}
	return false
}
