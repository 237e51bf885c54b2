package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// slotLockFilter identifies the lock document for one slot key. One lock
// document exists per (clinic, doctor, date, slotStart); incrementing its
// version inside a transaction forces concurrent writers on the same slot to
// write-conflict, which is exactly the serialization the capacity check and
// token allocation need.
func slotLockFilter(key SlotKey) bson.M {
	return bson.M{
		"clinicId":  key.ClinicID,
		"doctorId":  key.DoctorID,
		"date":      key.Date,
		"slotStart": key.SlotStart,
	}
}

// ensureLockDoc creates the lock document outside the transaction so the
// transactional $inc never needs an upsert. Best-effort: a duplicate-key
// race here just means another writer created it first.
func (r *MongoLedgerRepo) ensureLockDoc(ctx context.Context, key SlotKey) error {
	update := bson.M{"$setOnInsert": bson.M{"version": 0, "createdAt": time.Now()}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.lockColl.UpdateOne(ctx, slotLockFilter(key), update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("error ensuring slot lock: %w", err)
	}
	return nil
}

// WithSlotLock runs fn inside a Mongo session transaction pinned to the slot
// key. The first write in the transaction touches the slot's lock document,
// so two concurrent transactions on the same slot cannot both commit: the
// loser aborts with a write conflict and is reported as ErrTxnConflict for
// the caller to retry. Transactions on different slot keys never contend.
func (r *MongoLedgerRepo) WithSlotLock(ctx context.Context, key SlotKey, fn func(ctx context.Context) error) error {
	if err := r.ensureLockDoc(ctx, key); err != nil {
		return err
	}

	client := r.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		update := bson.M{
			"$inc": bson.M{"version": 1},
			"$set": bson.M{"touchedAt": time.Now()},
		}
		if _, err := r.lockColl.UpdateOne(sc, slotLockFilter(key), update); err != nil {
			return fmt.Errorf("error touching slot lock: %w", err)
		}
		return fn(sc)
	}

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err == nil {
		return nil
	}
	if isConflict(err) {
		return fmt.Errorf("%w: %v", ErrTxnConflict, err)
	}
	return err
}

// isConflict classifies driver errors that mean "another writer got there
// first": transient transaction aborts (write conflicts on the lock doc) and
// duplicate keys on the token index at commit.
func isConflict(err error) bool {
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	var se mongo.ServerError
	if errors.As(err, &se) {
		if se.HasErrorLabel("TransientTransactionError") ||
			se.HasErrorLabel("UnknownTransactionCommitResult") {
			return true
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Name == "WriteConflict" {
		return true
	}
	return false
}
