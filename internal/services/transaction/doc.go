/*
Package transaction implements the balance-affecting rule engine.

UseBalance debits an account and CancelBalance reverses a previous use in
full; both persist a SUCCESS transaction record inside the same database
transaction as the balance mutation. Validation failures abort with a
domain error and write nothing — recording the failed attempt is the
caller's job via SaveFailedUseTransaction, which persists a FAIL record
against the account's unchanged balance. QueryTransaction is a pure read
by the opaque transaction identifier; it deliberately performs no
ownership check (see the handler layer for the authorization boundary).

Cancellation is all-or-nothing against the original amount and allowed
for at most one year after the original transaction.
*/
package transaction
