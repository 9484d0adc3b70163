package apiclient

import "sync"

// LoginPath is where the client sends the user after a 401.
const LoginPath = "/login"

// Navigator exposes the caller's current location and lets the client
// redirect it.
type Navigator interface {
	Location() string
	Navigate(path string)
}

// RouteNavigator records the current route in memory and runs an optional
// hook on every navigation.
type RouteNavigator struct {
	mu       sync.Mutex
	location string
	onChange func(path string)
}

func NewRouteNavigator(location string, onChange func(path string)) *RouteNavigator {
	return &RouteNavigator{location: location, onChange: onChange}
}

func (n *RouteNavigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *RouteNavigator) Navigate(path string) {
	n.mu.Lock()
	n.location = path
	hook := n.onChange
	n.mu.Unlock()
	if hook != nil {
		hook(path)
	}
}
