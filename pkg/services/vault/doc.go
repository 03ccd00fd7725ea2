/*
Package vaultsvc implements asynchronous access to the vault.

Operations are delivered as envelopes (see [Envelope]) by a message routing
transport. Every envelope carries one of [OperationSave], [OperationLoad] or
[OperationDelete] and a payload which is either a single request or, for
[OperationSave] only, an ordered batch of requests. Dispatcher never returns
or panics on a failed operation: every failure is recorded in the envelope
(see [Envelope.Errors]) which is then sent back to the caller by the
transport. Envelopes with other operations are passed to the dead letter
handler.

A batch save stops at the first failed request. Requests saved before the
failure are not rolled back.
*/
package vaultsvc
