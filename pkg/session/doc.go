/*
Package session keeps named play sessions in a save store and serializes
access to each of them.

A domain.State belongs to one caller at a time. Hosts that serve many players
(or many requests for one player) use a Manager to load a session, advance it
and write it back as a single step, so two turns on the same save never
interleave.
*/
package session
