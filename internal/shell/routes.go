// Package shell holds the application frame: the route table, the nav bar
// and the home page.
package shell

import (
	"strconv"
	"strings"
)

// Route maps a screen path to its label and the API resource that serves it.
type Route struct {
	Path     string `json:"path"`
	Label    string `json:"label"`
	Resource string `json:"resource"`
}

var routes = []Route{
	{Path: "/", Label: "Home", Resource: "/api/v1/home"},
	{Path: "/booking", Label: "Appointments", Resource: "/api/v1/booking"},
	{Path: "/doctors", Label: "Doctors", Resource: "/api/v1/doctors"},
	{Path: "/sales", Label: "Financial Dashboard", Resource: "/api/v1/dashboard"},
}

// Routes returns the route table in nav order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route for path. A trailing slash is ignored.
func Lookup(path string) (Route, bool) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	for _, r := range routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

const appName = "Hospital Management System"

// Nav is the navigation bar.
type Nav struct {
	Title string  `json:"title"`
	Links []Route `json:"links"`
}

func NavBar() Nav {
	return Nav{Title: "My Healthcare System", Links: Routes()}
}

// Link is a call-to-action on the home page.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// HomePage is the landing page content.
type HomePage struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Actions  []Link `json:"actions"`
	Footer   string `json:"footer"`
}

// Home renders the landing page for the given calendar year.
func Home(year int) HomePage {
	return HomePage{
		Title:    "Welcome to " + appName,
		Subtitle: "Streamline appointments, manage doctors and patients, and track finances — all in one modern dashboard.",
		Actions: []Link{
			{Label: "Book Appointment", Path: "/booking"},
			{Label: "Browse Doctors", Path: "/doctors"},
			{Label: "View Financials", Path: "/sales"},
		},
		Footer: "© " + strconv.Itoa(year) + " " + appName,
	}
}
