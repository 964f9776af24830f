// Package errors carries a status code with every error the service returns.
//
// Repositories return coded errors (NotFound, DataLoss, Internal) with the
// pawn ID in the metadata. Orchestrators validate input, returning
// InvalidArgument, and wrap lower errors with context; Wrap keeps the
// original code. Handlers convert to gRPC with ToGRPCError, which carries
// the metadata as a google.rpc.ErrorInfo detail. Clients convert back with
// FromGRPCError so the Is* predicates keep working across the wire.
//
//	snapshot, err := repo.Get(ctx, pawn.GetInput{ID: id})
//	if err != nil {
//	    return nil, errors.Wrapf(err, "failed to load pawn %s", id)
//	}
//
// Validation collects every bad field before failing:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateNonNegative("stats.mass", p.Stats.Mass, vb)
//	errors.ValidateEnum("carrying.kind", kind, kinds, vb)
//	return vb.Build()
package errors
