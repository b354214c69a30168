// Package api defines the wire messages of the spendtrack Connect services.
//
// Messages are plain Go structs encoded as JSON by [Codec]. Every request type
// implements Validate, which the server runs before any business logic, and the
// codec rejects unknown fields so a client cannot smuggle values such as a
// userId into a request.
//
// Procedures follow the Connect convention "/<service>/<method>" and are
// served by the handlers in package apiconnect.
package api
