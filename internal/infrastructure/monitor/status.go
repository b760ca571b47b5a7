package monitor

import "time"

type Status struct {
	Services  map[string]bool `json:"services"`
	Healthy   bool            `json:"healthy"`
	LastCheck time.Time       `json:"lastCheck"`
}

func (s Status) clone() Status {
	services := make(map[string]bool, len(s.Services))
	for name, ok := range s.Services {
		services[name] = ok
	}
	s.Services = services
	return s
}
