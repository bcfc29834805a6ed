// Package assistant defines the structured response contract a chat turn
// returns to the client: the envelope, its safety metadata, and the closed
// set of UI cards (medication, facility, route, schedule, booking,
// prescription, medication plan) discriminated by cardType.
package assistant
