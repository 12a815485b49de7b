package reconcile

import (
	"sync"
)

var _ hydrator = &hydratorMock{}

type hydratorMock struct {
	ScheduleFunc func(venueIDs ...string)

	calls struct {
		Schedule []struct {
			VenueIDs []string
		}
	}
	lockSchedule sync.RWMutex
}

func (mock *hydratorMock) Schedule(venueIDs ...string) {
	if mock.ScheduleFunc == nil {
		panic("hydratorMock.ScheduleFunc: method is nil but hydrator.Schedule was just called")
	}
	callInfo := struct {
		VenueIDs []string
	}{VenueIDs: venueIDs}
	mock.lockSchedule.Lock()
	mock.calls.Schedule = append(mock.calls.Schedule, callInfo)
	mock.lockSchedule.Unlock()
	mock.ScheduleFunc(venueIDs...)
}

func (mock *hydratorMock) ScheduleCalls() []struct {
	VenueIDs []string
} {
	mock.lockSchedule.RLock()
	calls := mock.calls.Schedule
	mock.lockSchedule.RUnlock()
	return calls
}
