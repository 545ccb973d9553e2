package sunset

import (
	"fmt"
	"time"
)

// Place is a lat/long coordinate on the Earth.
type Place struct {
	Lat, Long float64
}

var (
	// StPetersburg is the default place, matching station 8726724.
	StPetersburg = Place{27.7606, -82.6269}
)

// SunEvents is a time series of SunEvent.
type SunEvents []SunEvent

// SunEvent is a sunrise or sunset event.
type SunEvent struct {
	Time  time.Time `json:"time"`
	Event Event     `json:"sunrise"`
}

func (s *SunEvent) String() string {
	return fmt.Sprintf("%s %s",
		s.Time.Format(time.RFC822),
		func() string {
			if s.Event == Sunrise {
				return "Sunrise"
			} else {
				return "Sunset"
			}
		}())
}

// Event encodes a sunrise or sunset event.
type Event bool

const (
	Sunrise Event = true
	Sunset        = false
)
