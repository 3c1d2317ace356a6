// Package service contains the business logic.
//
// Services sit between the handlers and the repositories or external
// clients. They return either an *errs.HTTPError meant for the client, or a
// plain error wrapped with one of the errs failure kinds (errs.ErrStore,
// errs.ErrUpstream, errs.ErrDelivery) that the global error handler turns
// into a generic 500.
package service
