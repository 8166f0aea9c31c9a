// Package services holds the business logic behind the HTTP surface.
//
// Services defined in this package:
// - AuthService: login, logout and per-request session validation
// - CollegeService: college onboarding and SuperAdmin provisioning
// - JobService: job posting management by college staff
// - PlacementService: the application lifecycle from submission to result
// - StudentService: student profile reads and edits
//
// Every protected operation takes the caller's identity and runs it through
// the authorization table before touching storage.
package services
