package nav

// Route identifies a console view.
type Route string

const (
	RouteLogin     Route = "login"
	RouteRegister  Route = "register"
	RouteDashboard Route = "dashboard"
	RouteEmployees Route = "employees"
)

// Navigator switches the active view. Controllers call it when an operation
// demands a different view: 401 sends the user to login, a missing record
// sends an edit form back to the list.
type Navigator interface {
	NavigateTo(route Route)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route Route)

func (f NavigatorFunc) NavigateTo(route Route) {
	f(route)
}
