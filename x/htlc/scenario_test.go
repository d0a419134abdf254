package htlc

import (
	"testing"

	"github.com/iov-one/phtlc/coin"
	"github.com/iov-one/phtlc/phtlctest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEscrowScenarios(t *testing.T) {
	for _, ticker := range []string{native, tok} {
		Convey("Given an escrow ledger holding "+ticker, t, func() {
			f := newFixture(t)
			sender := phtlctest.NewCondition()
			receiver := phtlctest.NewCondition()
			relayer := phtlctest.NewCondition()
			f.fund(t, sender.Address(), 1000)

			secret := phtlctest.SequenceID()
			hashlock := HashSecret(secret)

			Convey("A: commit, add lock, redeem", func() {
				id := phtlctest.SequenceID()
				_, err := f.deliver(f.ctx(at(0), sender), &CommitMsg{
					ID: id, Receiver: receiver.Address(),
					Amount: coin.NewCoinp(100, ticker), Timelock: at(1000),
				})
				So(err, ShouldBeNil)
				e := f.escrow(t, id)
				So(e.IsLocked(), ShouldBeFalse)
				So(e.Status, ShouldEqual, StatusActive)

				_, err = f.deliver(f.ctx(at(0), sender), &AddLockMsg{ID: id, Hashlock: hashlock, Timelock: at(2000)})
				So(err, ShouldBeNil)

				_, err = f.deliver(f.ctx(at(10), receiver), &RedeemMsg{ID: id, Secret: secret})
				So(err, ShouldBeNil)
				So(f.balance(t, receiver.Address(), ticker), ShouldEqual, 100)
				So(f.escrow(t, id).Status, ShouldEqual, StatusRedeemed)
			})

			Convey("With a locked escrow of 50 and a reward of 10", func() {
				id := phtlctest.SequenceID()
				_, err := f.deliver(f.ctx(at(0), sender), &LockMsg{
					ID: id, Receiver: receiver.Address(), Hashlock: hashlock,
					Amount: coin.NewCoinp(50, ticker), Timelock: at(1000),
				})
				So(err, ShouldBeNil)
				_, err = f.deliver(f.ctx(at(0), sender), &LockRewardMsg{
					ID: id, Reward: coin.NewCoinp(10, ticker), RewardTimelock: at(500),
				})
				So(err, ShouldBeNil)
				So(f.balance(t, sender.Address(), ticker), ShouldEqual, 940)

				Convey("B: early redeem returns the reward to the sender", func() {
					_, err := f.deliver(f.ctx(at(100), receiver), &RedeemMsg{ID: id, Secret: secret})
					So(err, ShouldBeNil)
					So(f.balance(t, receiver.Address(), ticker), ShouldEqual, 50)
					So(f.balance(t, sender.Address(), ticker), ShouldEqual, 950)
				})

				Convey("C: late redeem by a relayer pays the relayer", func() {
					_, err := f.deliver(f.ctx(at(600), relayer), &RedeemMsg{ID: id, Secret: secret})
					So(err, ShouldBeNil)
					So(f.balance(t, receiver.Address(), ticker), ShouldEqual, 50)
					So(f.balance(t, relayer.Address(), ticker), ShouldEqual, 10)
					So(f.balance(t, sender.Address(), ticker), ShouldEqual, 940)
				})

				Convey("D: late redeem by the receiver pays everything to the receiver", func() {
					_, err := f.deliver(f.ctx(at(600), receiver), &RedeemMsg{ID: id, Secret: secret})
					So(err, ShouldBeNil)
					So(f.balance(t, receiver.Address(), ticker), ShouldEqual, 60)
				})

				Convey("F: a second redeem is rejected", func() {
					_, err := f.deliver(f.ctx(at(600), receiver), &RedeemMsg{ID: id, Secret: secret})
					So(err, ShouldBeNil)
					_, err = f.deliver(f.ctx(at(601), relayer), &RedeemMsg{ID: id, Secret: secret})
					So(ErrAlreadyClaimed.Is(err), ShouldBeTrue)
					So(f.balance(t, relayer.Address(), ticker), ShouldEqual, 0)
					So(f.balance(t, CustodyAddress(id), ticker), ShouldEqual, 0)
				})
			})
		})
	}

	Convey("E: refund of a native escrow waits for the timelock", t, func() {
		f := newFixture(t)
		sender := phtlctest.NewCondition()
		f.fund(t, sender.Address(), 30)

		id := phtlctest.SequenceID()
		_, err := f.deliver(f.ctx(at(0), sender), &LockMsg{
			ID: id, Receiver: phtlctest.NewCondition().Address(), Hashlock: HashSecret(phtlctest.SequenceID()),
			Amount: coin.NewCoinp(30, native), Timelock: at(10),
		})
		So(err, ShouldBeNil)
		So(f.balance(t, sender.Address(), native), ShouldEqual, 0)

		_, err = f.deliver(f.ctx(at(5), sender), &RefundMsg{ID: id})
		So(ErrNotPastTimeLock.Is(err), ShouldBeTrue)

		_, err = f.deliver(f.ctx(at(11), sender), &RefundMsg{ID: id})
		So(err, ShouldBeNil)
		So(f.balance(t, sender.Address(), native), ShouldEqual, 30)
		So(f.escrow(t, id).Status, ShouldEqual, StatusRefunded)
	})
}
