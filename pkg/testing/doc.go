// Package testing provides test doubles for the clock runtime.
//
// Drive the animation loop without a display by pairing a [FakeClock] with a
// [FakeScheduler]:
//
//	clk := clocktest.NewFakeClockAt(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC))
//	sched := clocktest.NewFakeScheduler()
//	c := clock.New(doc, sched, visibility, clk)
//	c.Mount()
//
//	clk.Advance(time.Second)
//	sched.Pump(clk)
//
// FakeScheduler counts requests and cancellations, so tests can assert how
// many frame callbacks are outstanding after pause/resume sequences.
//
// [CaptureSnapshot] records a document's element tree with coordinates
// rounded to two decimals; [Snapshot.Diff] compares two captures line by line.
package testing
