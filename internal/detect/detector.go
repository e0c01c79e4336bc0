package detect

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"backend-parishlive/internal/prompt"
	"backend-parishlive/internal/session"
	"backend-parishlive/internal/shared/geo"
)

// ErrPermissionDenied is terminal for a detection run: the loop never retries
// on its own and only a later explicit grant (a new Run) resumes detection.
var ErrPermissionDenied = errors.New("location permission denied")

const (
	defaultInterval  = 60 * time.Second
	defaultDistanceM = 100
)

// Fix is a single location sample.
type Fix struct {
	Point geo.Point
	At    time.Time
}

// LocationProvider abstracts platform location services.
type LocationProvider interface {
	RequestPermission(ctx context.Context) error
	Current(ctx context.Context) (Fix, error)
	// Watch yields a fix roughly every interval or every distanceM meters of
	// movement, whichever comes first. The channel closes when ctx ends.
	Watch(ctx context.Context, interval time.Duration, distanceM float64) (<-chan Fix, error)
}

// SessionSource provides the current set of active sessions. It is consulted
// on every fix, never cached across fixes.
type SessionSource interface {
	Active(ctx context.Context) ([]session.Session, error)
}

// Announcement surfaces a newly matched session to the user.
type Announcement struct {
	Session session.Session
}

// ConnectOutcome is what should happen when the user accepts an announcement.
type ConnectOutcome int

const (
	// ConnectNavigate: authenticated user, go straight to the session view.
	ConnectNavigate ConnectOutcome = iota
	// ConnectShowSignup: guest, and the prompt gate allows the sign-up prompt.
	ConnectShowSignup
	// ConnectSuppressed: guest inside the prompt cooldown; treat the accept
	// as a dismissal.
	ConnectSuppressed
)

// Detector samples device location and announces the first active session
// whose geofence contains a fix. The same session id is announced at most
// once while the device keeps matching it.
type Detector struct {
	provider  LocationProvider
	source    SessionSource
	gate      *prompt.Gate
	interval  time.Duration
	distanceM float64

	seq uint64

	mu            sync.Mutex
	appliedSeq    uint64
	lastAnnounced string

	announcements chan Announcement
	wg            sync.WaitGroup
}

func NewDetector(provider LocationProvider, source SessionSource, gate *prompt.Gate) *Detector {
	return &Detector{
		provider:      provider,
		source:        source,
		gate:          gate,
		interval:      defaultInterval,
		distanceM:     defaultDistanceM,
		announcements: make(chan Announcement, 1),
	}
}

// SetCadence overrides the watch cadence. Mainly for tests.
func (d *Detector) SetCadence(interval time.Duration, distanceM float64) {
	d.interval = interval
	d.distanceM = distanceM
}

// Announcements delivers matched sessions. The channel is not closed; Run
// returning is the teardown signal.
func (d *Detector) Announcements() <-chan Announcement {
	return d.announcements
}

// Run drives the detection loop until ctx is cancelled or the provider's
// watch channel closes. A permission error is returned as-is and terminal.
func (d *Detector) Run(ctx context.Context) error {
	if err := d.provider.RequestPermission(ctx); err != nil {
		return err
	}

	if fix, err := d.provider.Current(ctx); err == nil {
		d.dispatch(ctx, fix)
	}

	fixes, err := d.provider.Watch(ctx, d.interval, d.distanceM)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			d.wg.Wait()
			return nil
		case fix, ok := <-fixes:
			if !ok {
				d.wg.Wait()
				return nil
			}
			d.dispatch(ctx, fix)
		}
	}
}

// dispatch starts the session check for one fix. Checks may overlap when a
// new fix arrives while a previous backend fetch is still pending; the
// sequence number makes the most recently issued fix win when fetches
// complete out of order.
func (d *Detector) dispatch(ctx context.Context, fix Fix) {
	seq := atomic.AddUint64(&d.seq, 1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.check(ctx, fix, seq)
	}()
}

func (d *Detector) check(ctx context.Context, fix Fix, seq uint64) {
	active, err := d.source.Active(ctx)
	if err != nil {
		log.Printf("active session fetch failed: %v", err)
		return
	}
	region, matched := geo.FindContaining(fix.Point, session.Regions(active))

	d.mu.Lock()
	if seq <= d.appliedSeq {
		d.mu.Unlock()
		return
	}
	d.appliedSeq = seq
	if !matched {
		// The last announced id survives an unmatched fix: walking briefly
		// outside and back within one polling interval must not re-announce.
		d.mu.Unlock()
		return
	}
	if region.ID == d.lastAnnounced {
		d.mu.Unlock()
		return
	}
	d.lastAnnounced = region.ID
	d.mu.Unlock()

	for _, sess := range active {
		if sess.ID != region.ID {
			continue
		}
		select {
		case d.announcements <- Announcement{Session: sess}:
		case <-ctx.Done():
		}
		return
	}
}

// Connect resolves the user accepting an announcement. Guests go through the
// prompt gate; when the gate forbids showing, the accept behaves like a
// dismissal.
func (d *Detector) Connect(ctx context.Context, deviceID string, authenticated bool) ConnectOutcome {
	if authenticated {
		return ConnectNavigate
	}
	if d.gate == nil || d.gate.ShouldShow(ctx, deviceID) {
		return ConnectShowSignup
	}
	return ConnectSuppressed
}
