package arena

import (
	"errors"
	"testing"

	"github.com/automoto/tankarena/components"
	"github.com/automoto/tankarena/motion"
	"github.com/automoto/tankarena/shared/gamemath"
	"github.com/automoto/tankarena/shared/messages"
	"github.com/automoto/tankarena/shared/netconfig"
	"github.com/automoto/tankarena/tags"
	"github.com/leap-fish/necs/esync"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

type fakeTransport struct {
	local esync.NetworkId
	sent  []any
	err   error
}

func (f *fakeTransport) LocalUID() esync.NetworkId { return f.local }

func (f *fakeTransport) Send(msg any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestDriver(t *testing.T, local esync.NetworkId, opts ...DriverOption) (*Driver, *fakeTransport, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	tr := &fakeTransport{local: local}
	return NewDriver(donburi.NewWorld(), tr, log, opts...), tr, hook
}

func spawn(uid esync.NetworkId, x, y, rotation float64) messages.TankEnter {
	return messages.TankEnter{UID: uid, Color: netconfig.KindGreen, X: x, Y: y, Rotation: rotation}
}

func exampleMove(uid esync.NetworkId) messages.TankMove {
	return messages.TankMove{
		UID:      uid,
		X:        0,
		Y:        0,
		DestX:    0,
		DestY:    -100,
		Dist:     100,
		DestR:    0,
		Dir:      netconfig.DirRight,
		Speed:    50,
		Rotation: 0,
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)
	r := d.Registry()

	first := r.Resolve(4, netconfig.KindRed)
	second := r.Resolve(4, netconfig.KindBlue)

	if first.Entity() != second.Entity() {
		t.Fatalf("resolve created a second entity: %v vs %v", first.Entity(), second.Entity())
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	if kind := components.Tank.Get(second).Kind; kind != netconfig.KindRed {
		t.Fatalf("kind = %q, should stay fixed at creation", kind)
	}
	if components.Tank.Get(first).Visible {
		t.Fatal("freshly resolved tank should be invisible")
	}
	if nid := esync.GetNetworkId(first); nid == nil || *nid != 4 {
		t.Fatalf("network id component = %v", nid)
	}
}

func TestRemoveThenResolveCreatesFreshTank(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)
	r := d.Registry()

	old := r.Resolve(9, netconfig.KindRed).Entity()
	if !r.Remove(9) {
		t.Fatal("Remove reported unknown uid")
	}
	if _, ok := r.Lookup(9); ok {
		t.Fatal("lookup still finds removed tank")
	}
	if r.World().Valid(old) {
		t.Fatal("removed entity is still alive in the world")
	}

	fresh := r.Resolve(9, netconfig.KindBlue)
	if fresh.Entity() == old {
		t.Fatal("resolve after remove returned the old handle")
	}
	if kind := components.Tank.Get(fresh).Kind; kind != netconfig.KindBlue {
		t.Fatalf("kind = %q, want the new kind", kind)
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)
	d.Registry().Resolve(1, netconfig.KindRed)

	if d.Registry().Remove(2) {
		t.Fatal("Remove of an unknown uid reported success")
	}
	if d.Registry().Len() != 1 {
		t.Fatalf("Len = %d, want 1", d.Registry().Len())
	}
}

func TestLocalTankTracking(t *testing.T) {
	d, _, hook := newTestDriver(t, 5)
	r := d.Registry()

	r.Resolve(3, netconfig.KindRed)
	if _, ok := r.Local(); ok {
		t.Fatal("remote tank became local")
	}

	entry := r.Resolve(5, netconfig.KindBlue)
	local, ok := r.Local()
	if !ok || local.Entity() != entry.Entity() {
		t.Fatal("tank with the local uid was not recorded as local")
	}
	if !entry.HasComponent(tags.LocalTank) {
		t.Fatal("local tank not flagged")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Message != "your tank entered battle" {
		t.Fatalf("unexpected log entry %+v", hook.LastEntry())
	}

	r.Remove(5)
	if _, ok := r.Local(); ok {
		t.Fatal("local reference survived removal")
	}
}

func TestEachToleratesRemovalFromCallback(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)
	r := d.Registry()
	for _, uid := range []esync.NetworkId{1, 2, 3} {
		r.Resolve(uid, netconfig.KindRed)
	}

	var visited []esync.NetworkId
	r.Each(func(entry *donburi.Entry) {
		uid := components.Tank.Get(entry).UID
		visited = append(visited, uid)
		if uid == 1 {
			r.Remove(2)
			r.Remove(1)
		}
	})

	if len(visited) != 2 || visited[0] != 1 || visited[1] != 3 {
		t.Fatalf("visited %v, want [1 3]", visited)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestEnterAndIdleSnapPose(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)

	d.OnEnter(spawn(7, 10, 20, 90))
	entry, ok := d.Registry().Lookup(7)
	if !ok {
		t.Fatal("enter did not create the tank")
	}
	if !components.Tank.Get(entry).Visible {
		t.Fatal("enter should make the tank visible")
	}
	want := motion.Pose{Position: gamemath.Pt(10, 20), Rotation: 90}
	if got := components.Motion.Get(entry).Pose(); got != want {
		t.Fatalf("pose = %+v, want %+v", got, want)
	}

	d.OnIdle(messages.TankIdle{UID: 7, Color: netconfig.KindGreen, X: 30, Y: 40, Rotation: 180})
	if d.Registry().Len() != 1 {
		t.Fatalf("duplicate idle duplicated the tank: Len = %d", d.Registry().Len())
	}
	entry, _ = d.Registry().Lookup(7)
	want = motion.Pose{Position: gamemath.Pt(30, 40), Rotation: 180}
	if got := components.Motion.Get(entry).Pose(); got != want {
		t.Fatalf("pose after idle = %+v, want %+v", got, want)
	}
}

func TestMoveAndRemoveForUnknownTankAreIgnored(t *testing.T) {
	d, tr, _ := newTestDriver(t, 0)

	d.OnMove(exampleMove(42))
	d.OnRemove(messages.TankRemove{UID: 42})
	d.Tick(1)

	if d.Registry().Len() != 0 {
		t.Fatalf("unknown uid created a tank: Len = %d", d.Registry().Len())
	}
	if len(tr.sent) != 0 {
		t.Fatalf("unexpected outbound messages %v", tr.sent)
	}
}

func TestMoveThenTickReachesRest(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)
	d.OnEnter(spawn(1, 0, 0, 0))

	if err := d.Dispatch(exampleMove(1)); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	entry, _ := d.Registry().Lookup(1)
	if !components.Track.Get(entry).Running {
		t.Fatal("move should start the tread loop")
	}

	d.Tick(2.0)

	m := components.Motion.Get(entry)
	if m.State() != motion.Idle {
		t.Fatalf("state = %s, want idle", m.State())
	}
	if got := m.Pose().Position; got != gamemath.Pt(100, 0) {
		t.Fatalf("position = %v, want (100, 0)", got)
	}
	if components.Track.Get(entry).Running {
		t.Fatal("tread loop still running at rest")
	}
}

func TestTickAdvancesEveryTank(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)
	for _, uid := range []esync.NetworkId{1, 2} {
		d.OnEnter(spawn(uid, 0, 0, 0))
		d.OnMove(exampleMove(uid))
	}

	d.Tick(0.5)

	d.Registry().Each(func(entry *donburi.Entry) {
		got := components.Motion.Get(entry).Pose().Position
		if !got.ApproxEqual(gamemath.Pt(25, 0), 1e-9) {
			t.Errorf("tank %d at %v, want (25, 0)", components.Tank.Get(entry).UID, got)
		}
	})
}

func TestRequestMove(t *testing.T) {
	d, tr, _ := newTestDriver(t, 5)

	sent, err := d.RequestMove(gamemath.Pt(1, 1))
	if sent || err != nil {
		t.Fatalf("request without a local tank: sent=%v err=%v", sent, err)
	}

	d.Registry().Resolve(5, netconfig.KindBlue)
	if sent, _ := d.RequestMove(gamemath.Pt(1, 1)); sent {
		t.Fatal("request sent for an invisible local tank")
	}

	d.OnIdle(messages.TankIdle{UID: 5, Color: netconfig.KindBlue, X: 12, Y: 34, Rotation: 270})
	sent, err = d.RequestMove(gamemath.Pt(200, 300))
	if !sent || err != nil {
		t.Fatalf("sent=%v err=%v", sent, err)
	}
	if len(tr.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(tr.sent))
	}
	want := messages.MoveRequest{X: 12, Y: 34, Rotation: 270, DestX: 200, DestY: 300}
	if tr.sent[0] != want {
		t.Fatalf("sent %+v, want %+v", tr.sent[0], want)
	}
}

func TestRequestMoveSendError(t *testing.T) {
	d, tr, _ := newTestDriver(t, 5)
	d.OnEnter(spawn(5, 0, 0, 0))

	boom := errors.New("socket closed")
	tr.err = boom
	sent, err := d.RequestMove(gamemath.Pt(1, 1))
	if sent || !errors.Is(err, boom) {
		t.Fatalf("sent=%v err=%v, want wrapped send error", sent, err)
	}
}

func TestDispatchRejectsMalformedMessages(t *testing.T) {
	var reported []error
	d, _, hook := newTestDriver(t, 0, WithAnomalyReporter(func(err error) {
		reported = append(reported, err)
	}))
	d.OnEnter(spawn(1, 0, 0, 0))

	bad := exampleMove(1)
	bad.Dir = "sideways"
	err := d.Dispatch(bad)
	if !errors.Is(err, messages.ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
	if len(reported) != 1 {
		t.Fatalf("reported %d anomalies, want 1", len(reported))
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.WarnLevel {
		t.Fatalf("expected a warning log, got %+v", hook.LastEntry())
	}

	entry, _ := d.Registry().Lookup(1)
	if components.Motion.Get(entry).State() != motion.Idle {
		t.Fatal("malformed move reached the state machine")
	}

	if err := d.Dispatch(messages.TankEnter{Color: "Red"}); !errors.Is(err, messages.ErrMalformed) {
		t.Fatalf("enter without uid: err = %v", err)
	}
	if d.Registry().Len() != 1 {
		t.Fatalf("malformed enter created a tank: Len = %d", d.Registry().Len())
	}
}

func TestDispatchUnknownType(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)
	if err := d.Dispatch(messages.JoinRejected{Reason: "full"}); !errors.Is(err, ErrUnknownMessage) {
		t.Fatalf("err = %v, want ErrUnknownMessage", err)
	}
}

func TestDispatchRoutesAllKinds(t *testing.T) {
	d, _, _ := newTestDriver(t, 0)

	inbound := []any{
		spawn(1, 0, 0, 0),
		messages.TankIdle{UID: 2, Color: netconfig.KindRed, X: 5, Y: 5},
		exampleMove(1),
		messages.TankRemove{UID: 2},
	}
	for _, msg := range inbound {
		if err := d.Dispatch(msg); err != nil {
			t.Fatalf("Dispatch(%T): %v", msg, err)
		}
	}

	if d.Registry().Len() != 1 {
		t.Fatalf("Len = %d, want 1", d.Registry().Len())
	}
	entry, _ := d.Registry().Lookup(1)
	if components.Motion.Get(entry).State() != motion.Moving {
		t.Fatalf("tank 1 state = %s, want moving", components.Motion.Get(entry).State())
	}
}

func TestEnterSendsBattleEnter(t *testing.T) {
	d, tr, _ := newTestDriver(t, 0)
	if err := d.Enter(); err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if len(tr.sent) != 1 || tr.sent[0] != (messages.BattleEnter{}) {
		t.Fatalf("sent %v", tr.sent)
	}
}

func TestDriverReadAccessFollowsRegistrationOrder(t *testing.T) {
	d, _, _ := newTestDriver(t, 2)
	for _, uid := range []esync.NetworkId{3, 1, 2} {
		d.OnEnter(spawn(uid, 0, 0, 0))
	}

	if d.Len() != 3 {
		t.Fatalf("Len = %d, want 3", d.Len())
	}
	var order []esync.NetworkId
	d.Each(func(entry *donburi.Entry) {
		order = append(order, components.Tank.Get(entry).UID)
	})
	if len(order) != 3 || order[0] != 3 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("iteration order = %v, want [3 1 2]", order)
	}

	local, ok := d.Local()
	if !ok || components.Tank.Get(local).UID != 2 {
		t.Fatalf("Local = %v, %v", local, ok)
	}
}

func TestTankTagsFollowRegistry(t *testing.T) {
	d, _, _ := newTestDriver(t, 2)
	for _, uid := range []esync.NetworkId{1, 2, 3} {
		d.OnEnter(spawn(uid, 0, 0, 0))
	}
	world := d.Registry().World()
	tanks := donburi.NewQuery(filter.Contains(tags.Tank))
	locals := donburi.NewQuery(filter.Contains(tags.LocalTank))

	if n := tanks.Count(world); n != 3 {
		t.Fatalf("tagged tanks = %d, want 3", n)
	}
	var localUIDs []esync.NetworkId
	locals.Each(world, func(entry *donburi.Entry) {
		localUIDs = append(localUIDs, components.Tank.Get(entry).UID)
	})
	if len(localUIDs) != 1 || localUIDs[0] != 2 {
		t.Fatalf("local-tagged tanks = %v, want [2]", localUIDs)
	}

	d.OnRemove(messages.TankRemove{UID: 2})
	if n := tanks.Count(world); n != 2 {
		t.Fatalf("tagged tanks after remove = %d, want 2", n)
	}
	if n := locals.Count(world); n != 0 {
		t.Fatalf("local-tagged tanks after remove = %d, want 0", n)
	}
}
