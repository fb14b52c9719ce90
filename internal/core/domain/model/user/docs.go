// Package user holds the subset of the identity record the fulfillment core
// reads: the role and the blocked flag. Users are created and modified by the
// identity provider; the core never changes them after they are stored.
package user
