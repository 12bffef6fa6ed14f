package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"batwatch/internal/device"
	"batwatch/internal/engine"
	"batwatch/pkg/logx"
)

type fakeSource struct {
	out string
	err error
}

func (f *fakeSource) Fetch(context.Context) (string, error) { return f.out, f.err }

type fakeNotifier struct {
	bodies []string
}

func (f *fakeNotifier) Notify(_ context.Context, _, body, _ string) error {
	f.bodies = append(f.bodies, body)
	return nil
}

func newTestService(src Source, n *fakeNotifier) (*Service, *[]time.Duration) {
	svc := New(
		Config{Interval: 5 * time.Second, Debug: true},
		src,
		engine.Engine{Threshold: 10, Pause: time.Second},
		n,
		logx.Nop(),
	)
	var slept []time.Duration
	svc.sleep = func(_ context.Context, d time.Duration) { slept = append(slept, d) }
	return svc, &slept
}

func TestCycleProcessesDevicesInDiscoveryOrder(t *testing.T) {
	t.Parallel()
	src := &fakeSource{out: "Found Foo Headset!\nStatus: BATTERY_AVAILABLE\nLevel: 80%\n" +
		"Found Bar Headset!\nStatus: BATTERY_CHARGING\nLevel: 55%\n"}
	n := &fakeNotifier{}
	svc, slept := newTestService(src, n)

	svc.cycle(context.Background())

	want := []string{
		"New device connected", "Battery level: 80%",
		"New device connected", "Battery level: 55%",
	}
	if len(n.bodies) != len(want) {
		t.Fatalf("got %d notifications %v, want %d", len(n.bodies), n.bodies, len(want))
	}
	for i, w := range want {
		if n.bodies[i] != w {
			t.Fatalf("notification[%d] = %q, want %q", i, n.bodies[i], w)
		}
	}

	// One anti-coalescing pause per connect/level pair.
	if len(*slept) != 2 {
		t.Fatalf("expected 2 pauses, got %v", *slept)
	}

	rec, ok := svc.Registry().Lookup("Foo Headset")
	if !ok {
		t.Fatal("expected Foo Headset in registry")
	}
	if rec.LastNotified == nil || *rec.LastNotified != 80 {
		t.Fatalf("Foo LastNotified = %v, want 80", rec.LastNotified)
	}
	if svc.Registry().Len() != 2 {
		t.Fatalf("registry size = %d, want 2", svc.Registry().Len())
	}
}

func TestCycleFetchFailureLeavesRegistryUntouched(t *testing.T) {
	t.Parallel()
	src := &fakeSource{err: errors.New("exec: headsetcontrol not found")}
	n := &fakeNotifier{}
	svc, _ := newTestService(src, n)
	svc.Registry().Upsert("Foo", device.Record{Name: "Foo", Status: device.Discharging, Battery: device.Level(80)})

	svc.cycle(context.Background())

	if len(n.bodies) != 0 {
		t.Fatalf("expected no notifications, got %v", n.bodies)
	}
	rec, _ := svc.Registry().Lookup("Foo")
	if rec.Battery == nil || *rec.Battery != 80 {
		t.Fatalf("record changed on failed fetch: %s", rec)
	}
}

func TestCycleDropsMalformedDeviceOnly(t *testing.T) {
	t.Parallel()
	src := &fakeSource{out: "Found Foo Headset!\nStatus: BATTERY_AVAILABLE\nLevel: oops%\n" +
		"Found Bar Headset!\nStatus: BATTERY_AVAILABLE\nLevel: 40%\n"}
	n := &fakeNotifier{}
	svc, _ := newTestService(src, n)

	svc.cycle(context.Background())

	if _, ok := svc.Registry().Lookup("Foo Headset"); ok {
		t.Fatal("malformed device must not enter the registry")
	}
	if _, ok := svc.Registry().Lookup("Bar Headset"); !ok {
		t.Fatal("well-formed device should still be processed")
	}
}

func TestSecondIdenticalCycleIsQuiet(t *testing.T) {
	t.Parallel()
	src := &fakeSource{out: "Found Foo Headset!\nStatus: BATTERY_AVAILABLE\nLevel: 80%\n"}
	n := &fakeNotifier{}
	svc, _ := newTestService(src, n)

	svc.cycle(context.Background())
	first := len(n.bodies)
	svc.cycle(context.Background())

	if len(n.bodies) != first {
		t.Fatalf("second identical cycle emitted notifications: %v", n.bodies[first:])
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	t.Parallel()
	src := &fakeSource{out: ""}
	svc, _ := newTestService(src, &fakeNotifier{})

	ctx, cancel := context.WithCancel(context.Background())
	var slept time.Duration
	svc.sleep = func(_ context.Context, d time.Duration) {
		slept = d
		cancel()
	}

	err := svc.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	// The tick sleep compensates for cycle duration: 0 < sleep <= interval.
	if slept <= 0 || slept > 5*time.Second {
		t.Fatalf("tick sleep = %v, want within (0, interval]", slept)
	}
}
