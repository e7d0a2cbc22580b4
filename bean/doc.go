// Package bean holds the runtime objects the binder writes into.
//
// The binder never reflects over Go structs. It talks to targets through the
// Bean interface, which reports the concrete type of the instance and the
// declared type of each property. Object is the map-backed Bean used for
// classes described by a typegraph schema; List and Map are typed containers
// that refuse entries whose key or value does not match their element types.
package bean
