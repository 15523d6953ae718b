package dto

import "net/http"

// GetHTTPStatus maps a domain error code to an HTTP status code. Codes
// starting with INVALID_ describe rejected input; ledger shortfalls map to
// 422 so clients can distinguish them from plain conflicts.
func GetHTTPStatus(code string) int {
	switch code {
	case "NOT_FOUND":
		return http.StatusNotFound
	case "INVALID_STATE":
		return http.StatusConflict
	case "NO_INVENTORY", "INSUFFICIENT_INVENTORY":
		return http.StatusUnprocessableEntity
	case "INVALID_INPUT", "INVALID_QUANTITY", "INVALID_PRODUCT", "INVALID_WAREHOUSE",
		"INVALID_NAME", "INVALID_LOCATION_CODE", "INVALID_NUMBER", "INVALID_ITEMS",
		"INVALID_ORGANIZATION", "INVALID_EXPIRATION", "INVALID_OPERATION",
		"INVALID_REFERENCE", "INVALID_CHANGE", "INVALID_INVENTORY", "VALIDATION":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
