// Package ownership holds the single authorization predicate shared by
// every mutation path: only the author of a resource may change it.
package ownership

func IsOwner(resourceAuthorID, callerID int64) bool {
	return resourceAuthorID == callerID
}
