package arena

import (
	"github.com/automoto/tankarena/archetypes"
	"github.com/automoto/tankarena/components"
	"github.com/automoto/tankarena/config"
	"github.com/automoto/tankarena/tags"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// Registry maps server uids to tank entities in a donburi world.
// It is not safe for concurrent use; the battle scene drives it from the
// update loop only.
type Registry struct {
	world   donburi.World
	index   *orderedmap.OrderedMap[esync.NetworkId, donburi.Entity]
	localID func() esync.NetworkId

	local    donburi.Entity
	hasLocal bool

	log *logrus.Logger
}

// NewRegistry creates a registry over world. localID reports the uid this
// client controls and is consulted whenever a tank is first created.
func NewRegistry(world donburi.World, localID func() esync.NetworkId, log *logrus.Logger) *Registry {
	return &Registry{
		world:   world,
		index:   orderedmap.NewOrderedMap[esync.NetworkId, donburi.Entity](),
		localID: localID,
		log:     log,
	}
}

// Lookup returns the tank registered under uid.
func (r *Registry) Lookup(uid esync.NetworkId) (*donburi.Entry, bool) {
	entity, ok := r.index.Get(uid)
	if !ok || !r.world.Valid(entity) {
		return nil, false
	}
	return r.world.Entry(entity), true
}

// Resolve returns the tank registered under uid, creating an invisible tank of
// the given kind if none exists yet. A new tank whose uid matches the local
// uid becomes the local tank.
func (r *Registry) Resolve(uid esync.NetworkId, kind string) *donburi.Entry {
	if entry, ok := r.Lookup(uid); ok {
		return entry
	}

	entry := archetypes.Tank.Spawn(r.world)
	esync.NetworkIdComponent.SetValue(entry, uid)
	components.Tank.SetValue(entry, components.TankData{UID: uid, Kind: kind})
	components.Track.SetValue(entry, components.NewTrackData(config.Tank.TrackFrames, config.Tank.TrackFrameDuration))
	r.index.Set(uid, entry.Entity())

	fields := logrus.Fields{"uid": uid, "kind": kind}
	if r.localID != nil && r.localID() == uid {
		entry.AddComponent(tags.LocalTank)
		r.local = entry.Entity()
		r.hasLocal = true
		r.log.WithFields(fields).Info("your tank entered battle")
	} else {
		r.log.WithFields(fields).Info("tank entered battle")
	}

	return entry
}

// Remove discards the tank registered under uid. Unknown uids are ignored.
func (r *Registry) Remove(uid esync.NetworkId) bool {
	entity, ok := r.index.Get(uid)
	if !ok {
		return false
	}
	r.index.Delete(uid)

	if r.hasLocal && r.local == entity {
		r.hasLocal = false
	}
	if r.world.Valid(entity) {
		r.world.Remove(entity)
	}

	r.log.WithField("uid", uid).Info("tank left battle")
	return true
}

// Local returns the tank controlled by this client, if it has been seen.
func (r *Registry) Local() (*donburi.Entry, bool) {
	if !r.hasLocal || !r.world.Valid(r.local) {
		return nil, false
	}
	return r.world.Entry(r.local), true
}

// Each calls fn for every registered tank in registration order. The uid set
// is captured up front, so fn may add or remove tanks; a tank removed before
// its turn is skipped.
func (r *Registry) Each(fn func(*donburi.Entry)) {
	for _, uid := range r.index.Keys() {
		entity, ok := r.index.Get(uid)
		if !ok || !r.world.Valid(entity) {
			continue
		}
		fn(r.world.Entry(entity))
	}
}

// Len returns the number of registered tanks.
func (r *Registry) Len() int {
	return r.index.Len()
}

// World returns the donburi world holding the tank entities.
func (r *Registry) World() donburi.World {
	return r.world
}
