package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/empdesk/empdesk-console/internal/auth"
	"github.com/empdesk/empdesk-console/internal/controllers"
	"github.com/empdesk/empdesk-console/internal/models"
	"github.com/empdesk/empdesk-console/internal/nav"
	"github.com/empdesk/empdesk-console/internal/session"
	"github.com/empdesk/empdesk-console/pkg/errors"
)

// ImageSource serves stored upload bytes, typically through a TTL cache.
type ImageSource interface {
	Get(ctx context.Context, name string) ([]byte, string, error)
	Invalidate(name string)
}

// Console is the terminal front-end. It implements nav.Navigator: controllers
// redirect by switching the console's active route, exactly like the SPA's
// router navigation. All rendering lives here; the controllers never print.
type Console struct {
	api      controllers.EmployeeAPI
	images   ImageSource
	sessions *session.Store
	auth     *auth.Service
	gate     *nav.Gate
	pageSize int

	in    *bufio.Scanner
	out   io.Writer
	route nav.Route
	list  *controllers.ListController
}

// New creates a console reading commands from in and rendering to out.
func New(api controllers.EmployeeAPI, images ImageSource, sessions *session.Store, authService *auth.Service, pageSize int, in io.Reader, out io.Writer) *Console {
	c := &Console{
		api:      api,
		images:   images,
		sessions: sessions,
		auth:     authService,
		pageSize: pageSize,
		in:       bufio.NewScanner(in),
		out:      out,
		route:    nav.RouteDashboard,
	}
	c.gate = nav.NewGate(sessions, c)
	c.list = controllers.NewListController(api, sessions, c, c.confirm, pageSize)
	return c
}

// NavigateTo switches the active view.
func (c *Console) NavigateTo(route nav.Route) {
	c.route = route
}

// Run drives the console until the user quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		switch c.route {
		case nav.RouteLogin:
			c.loginView(ctx)
		case nav.RouteRegister:
			c.registerView(ctx)
		case nav.RouteDashboard:
			if !c.gate.Require(func() { c.dashboardView() }) {
				continue
			}
		case nav.RouteEmployees:
			if !c.gate.Require(func() { c.employeesView(ctx) }) {
				continue
			}
		default:
			return fmt.Errorf("unknown route %q", c.route)
		}

		if c.route == "" {
			return nil
		}
	}
}

func (c *Console) loginView(ctx context.Context) {
	fmt.Fprintln(c.out, "== Login == (or type 'register' / 'quit')")
	username := c.prompt("Username: ")
	switch username {
	case "register":
		c.route = nav.RouteRegister
		return
	case "quit", "":
		c.route = ""
		return
	}
	password := c.prompt("Password: ")

	err := c.auth.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		fmt.Fprintln(c.out, "Login failed:", errors.MessageFor(err))
		return
	}
	c.route = nav.RouteDashboard
}

func (c *Console) registerView(ctx context.Context) {
	fmt.Fprintln(c.out, "== Register ==")
	req := models.RegisterRequest{
		Username: c.prompt("Username: "),
		Password: c.prompt("Password: "),
	}
	fmt.Sscanf(c.prompt("Serial no: "), "%d", &req.Sno)

	if err := c.auth.Register(ctx, req); err != nil {
		fmt.Fprintln(c.out, "Registration failed:", errors.MessageFor(err))
		return
	}
	fmt.Fprintln(c.out, "Registered. Please log in.")
	c.route = nav.RouteLogin
}

func (c *Console) dashboardView() {
	sess, _ := c.sessions.Get()
	fmt.Fprintf(c.out, "== Dashboard ==\nWelcome, %s\n", sess.Username)
	if exp, ok := c.sessions.ExpiresAt(); ok {
		fmt.Fprintf(c.out, "Session expires %s\n", exp.Format("2006-01-02 15:04"))
	}
	switch c.prompt("[e]mployees  [l]ogout  [q]uit > ") {
	case "e":
		c.route = nav.RouteEmployees
	case "l":
		c.auth.Logout()
		c.route = nav.RouteLogin
	case "q":
		c.route = ""
	}
}

func (c *Console) employeesView(ctx context.Context) {
	c.list.Refresh(ctx)
	state := c.list.State()
	c.renderList(state)

	input := c.prompt("employees > ")
	cmd, arg, _ := strings.Cut(input, " ")
	switch cmd {
	case "search":
		c.list.SetSearch(ctx, arg)
	case "sort":
		c.list.SortBy(ctx, arg)
	case "next":
		c.list.NextPage(ctx)
	case "prev":
		c.list.PrevPage(ctx)
	case "create":
		c.formView(ctx, controllers.NewCreateForm(c.api, c.sessions, c))
	case "edit":
		form := controllers.NewEditForm(c.api, c.sessions, c, arg)
		if form.Load(ctx) == nil {
			c.formView(ctx, form)
		}
	case "view":
		c.viewImage(ctx, arg)
	case "delete":
		c.list.Delete(ctx, arg)
	case "back":
		c.route = nav.RouteDashboard
	case "quit":
		c.route = ""
	}
}

func (c *Console) renderList(state controllers.ListState) {
	if state.Err != "" {
		fmt.Fprintln(c.out, "! "+state.Err)
	}
	fmt.Fprintf(c.out, "== Employees (Count: %d) ==\n", state.Total)

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tMOBILE\tDESIGNATION\tGENDER\tCOURSE\tCREATED")
	for _, e := range state.Employees {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Serial, e.Name, e.Email, e.Mobile, e.Designation, e.Gender,
			strings.Join(e.Course, ","), e.CreateDate.Format("2006-01-02"))
	}
	tw.Flush()

	prev, next := " ", " "
	if state.HasPrev() {
		prev = "<"
	}
	if state.HasNext() {
		next = ">"
	}
	fmt.Fprintf(c.out, "%s Page %d of %d %s\n", prev, state.Query.Page, state.Pages, next)
	fmt.Fprintln(c.out, "commands: search <text> | sort <field> | next | prev | create | edit <id> | view <id> | delete <id> | back | quit")
}

// viewImage fetches an employee's stored image through the cache and reports
// what came back. The terminal can't paint pixels, so name, content type and
// size stand in for the thumbnail the browser build renders per row.
func (c *Console) viewImage(ctx context.Context, id string) {
	var name string
	for _, e := range c.list.State().Employees {
		if strconv.Itoa(e.Serial) == id || e.ID == id {
			name = e.Image
			break
		}
	}
	if name == "" {
		fmt.Fprintf(c.out, "! no image on record for %q\n", id)
		return
	}

	data, contentType, err := c.images.Get(ctx, name)
	if err != nil {
		fmt.Fprintln(c.out, "!", errors.MessageFor(err))
		return
	}
	fmt.Fprintf(c.out, "image %s (%s, %d bytes)\n", name, contentType, len(data))
}

func (c *Console) formView(ctx context.Context, form *controllers.FormController) {
	for {
		state := form.State()
		if state.Err != "" {
			fmt.Fprintln(c.out, "! "+state.Err)
		}
		fmt.Fprintf(c.out, "name=%s email=%s mobile=%s designation=%s gender=%s course=%s\n",
			state.Form.Name, state.Form.Email, state.Form.Mobile,
			state.Form.Designation, state.Form.Gender, strings.Join(state.Form.Course, ","))
		if state.EditMode && state.ExistingImage != "" && state.Form.Image == nil {
			fmt.Fprintf(c.out, "image: keeping %s\n", state.ExistingImage)
		}

		input := c.prompt("form (set <field> <value> | course +/-<name> | image <path> | submit | cancel) > ")
		if c.route == "" {
			return
		}
		cmd, arg, _ := strings.Cut(input, " ")
		switch cmd {
		case "set":
			field, value, _ := strings.Cut(arg, " ")
			if err := form.SetField(field, value); err != nil {
				fmt.Fprintln(c.out, "!", err)
			}
		case "course":
			if len(arg) > 1 {
				if err := form.SetCourse(arg[1:], arg[0] == '+'); err != nil {
					fmt.Fprintln(c.out, "!", err)
				}
			}
		case "image":
			img, err := readImage(arg)
			if err == nil {
				err = form.SetImage(img)
			}
			if err != nil {
				fmt.Fprintln(c.out, "!", errors.MessageFor(err))
			}
		case "submit":
			if err := form.Submit(ctx); err == nil {
				if state.EditMode && state.Form.Image != nil && state.ExistingImage != "" {
					// The stored file was replaced; drop the stale bytes.
					c.images.Invalidate(state.ExistingImage)
				}
				return
			}
			if c.route != nav.RouteEmployees {
				// Submit redirected (expired session); leave the form.
				return
			}
		case "cancel":
			return
		}
	}
}

func (c *Console) confirm(prompt string) bool {
	return c.prompt(prompt+" [y/N] ") == "y"
}

func (c *Console) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		// Input exhausted; fall through to quit on the next dispatch.
		c.route = ""
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// readImage loads a file from disk as an upload candidate; the declared type
// comes from the file extension, mirroring what the browser reports.
func readImage(path string) (models.ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.ImageFile{}, err
	}
	return models.ImageFile{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}
