package feed

// Sentinel turns visibility of the trailing list marker into load-more requests.
//
// The marker only exists while there is something to load: it is detached when
// the list is empty, errored or exhausted, or when the view is unmounted. Each
// time a load settles the observation is re-armed, so a marker that is still on
// screen after a page arrives counts as a new transition.
type Sentinel struct {
	controller *Controller
	mounted    bool
	attached   bool
	visible    bool
	settledGen uint64
}

// NewSentinel creates a mounted sentinel for c
func NewSentinel(c *Controller) *Sentinel {
	return &Sentinel{
		controller: c,
		mounted:    true,
	}
}

// SetMounted mounts or unmounts the marker. Unmounting detaches the observation.
func (s *Sentinel) SetMounted(mounted bool) {
	s.mounted = mounted
	if !mounted {
		s.detach()
	}
}

// Attached reports whether the marker would be observed for the current feed
// state. It does not change the observation.
func (s *Sentinel) Attached() bool {
	return s.shouldAttach(s.controller.state)
}

// Observe reports the current visibility of the marker. It calls RequestMore
// only when the marker goes from hidden to visible while attached.
func (s *Sentinel) Observe(visible bool) (Request, bool) {
	st := s.controller.state
	s.sync(st)
	if !s.attached {
		return Request{}, false
	}

	became := visible && !s.visible
	s.visible = visible
	if !became || !st.HasMore || st.IsLoading() {
		return Request{}, false
	}

	s.controller.logger.Debug().Int("page", st.CurrentPage+1).Msg("Sentinel became visible")
	return s.controller.RequestMore()
}

func (s *Sentinel) shouldAttach(st State) bool {
	return s.mounted && st.HasMore && st.Phase != Errored && len(st.Items) > 0
}

func (s *Sentinel) sync(st State) {
	if !s.shouldAttach(st) {
		s.detach()
		return
	}
	if !s.attached {
		s.attached = true
		s.visible = false
	}
	if !st.IsLoading() && st.Generation != s.settledGen {
		s.settledGen = st.Generation
		s.visible = false
	}
}

func (s *Sentinel) detach() {
	s.attached = false
	s.visible = false
}
