package queue

import (
	"testing"

	"go.viam.com/test"
)

func TestFIFOPushPopOrder(t *testing.T) {
	var q FIFO[int]
	test.That(t, q.Empty(), test.ShouldBeTrue)

	q.Push(1)
	q.Push(2)
	q.Push(3)
	test.That(t, q.Len(), test.ShouldEqual, 3)

	front, ok := q.Front()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, front, test.ShouldEqual, 1)

	back, ok := q.Back()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, back, test.ShouldEqual, 3)

	v, ok := q.Pop()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, 1)
	test.That(t, q.Len(), test.ShouldEqual, 2)
}

func TestFIFOEmptyFrontBack(t *testing.T) {
	var q FIFO[int]
	_, ok := q.Front()
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = q.Back()
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = q.Pop()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestFIFODrain(t *testing.T) {
	var q FIFO[int]
	q.Push(1)
	q.Push(2)
	drained := q.Drain()
	test.That(t, drained, test.ShouldResemble, []int{1, 2})
	test.That(t, q.Empty(), test.ShouldBeTrue)
}

func TestFIFOSnapshotDoesNotDrain(t *testing.T) {
	var q FIFO[int]
	q.Push(1)
	q.Push(2)

	snap := q.Snapshot()
	test.That(t, snap, test.ShouldResemble, []int{1, 2})
	test.That(t, q.Len(), test.ShouldEqual, 2)

	// mutating the snapshot must not alias the queue's backing storage.
	snap[0] = 99
	front, _ := q.Front()
	test.That(t, front, test.ShouldEqual, 1)
}
