// Package errors provides structured errors for rpg-companion.
//
// Errors carry a Code, a user facing Message, an optional Cause and
// free-form metadata:
//
//	err := errors.NotFound("roll table not found").
//	    WithMeta("table_id", tableID)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := store.Initialize(ctx); err != nil {
//	    return errors.Wrap(err, "failed to load content pack")
//	}
//
// Component configuration is validated with a ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Store == nil {
//	    vb.RequiredField("Store")
//	}
//	return vb.Build()
//
// Handlers convert errors with ToGRPCError before returning them to a gRPC
// caller. Metadata travels as a google.protobuf.Struct status detail and is
// restored by FromGRPCError.
//
// Layer guidelines:
//   - Repositories return NotFound/AlreadyExists with the offending id in Meta.
//   - Orchestrators return InvalidArgument for bad input and
//     FailedPrecondition when the advancement state forbids an operation.
//   - Failures reported by the external actor service are wrapped and
//     returned unchanged to the caller; nothing is compensated.
package errors
