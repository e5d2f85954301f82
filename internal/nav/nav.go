// Package nav tracks which screen the app is on and enforces the
// mode-dependent navigation rules: pickup and delivery modes share
// the route selection and settings screens but have distinct home
// screens, and the add-PO form is only reachable once the selected
// company has blades on file to pick from.
package nav

import "github.com/JDODER260/pickupform/internal/settings"

// Screen identifies one of the app's screens.
type Screen string

const (
	ScreenRouteSelection    Screen = "route_selection"
	ScreenCompanyManagement Screen = "company_management"
	ScreenSettings          Screen = "settings"
	ScreenDeliveryHome      Screen = "delivery_home"
	ScreenPickupHome        Screen = "pickup_home"
	ScreenAddPO             Screen = "add_po"
	ScreenCompanySelection  Screen = "company_selection"
	ScreenAddCompany        Screen = "add_company"
)

// Home returns the mode's home screen.
func Home(mode settings.Mode) Screen {
	if mode == settings.ModePickup {
		return ScreenPickupHome
	}
	return ScreenDeliveryHome
}

// Controller is the navigation state machine. The zero value is not
// usable; construct with New.
type Controller struct {
	mode    settings.Mode
	current Screen
}

// New starts the controller on route selection, the screen every
// session opens with.
func New(mode settings.Mode) *Controller {
	return &Controller{mode: mode, current: ScreenRouteSelection}
}

// Current returns the active screen.
func (c *Controller) Current() Screen { return c.current }

// Mode returns the active app mode.
func (c *Controller) Mode() settings.Mode { return c.mode }

// SetMode switches modes. When the controller sits on the old mode's
// home screen it moves to the new mode's home.
func (c *Controller) SetMode(mode settings.Mode) {
	onHome := c.current == Home(c.mode)
	c.mode = mode
	if onHome {
		c.current = Home(mode)
	}
}

// GoHome jumps to the current mode's home screen.
func (c *Controller) GoHome() {
	c.current = Home(c.mode)
}

// Go moves to the given screen. The add-PO form is gated: callers
// pass whether the selected company has any frequent blades, and when
// it does not the controller lands on company management instead so
// the driver can add blades first. Go reports the screen actually
// reached.
func (c *Controller) Go(target Screen, companyHasBlades bool) Screen {
	if target == ScreenAddPO && !companyHasBlades {
		target = ScreenCompanyManagement
	}
	c.current = target
	return c.current
}

// Back moves to the current screen's parent and reports the screen
// reached. Route selection is the root; Back there is a no-op.
func (c *Controller) Back() Screen {
	c.current = c.parent(c.current)
	return c.current
}

func (c *Controller) parent(s Screen) Screen {
	switch s {
	case ScreenRouteSelection:
		return ScreenRouteSelection
	case ScreenCompanyManagement, ScreenSettings:
		return ScreenRouteSelection
	case ScreenDeliveryHome, ScreenPickupHome:
		return ScreenRouteSelection
	case ScreenCompanySelection:
		return Home(c.mode)
	case ScreenAddPO, ScreenAddCompany:
		return ScreenCompanySelection
	default:
		return ScreenRouteSelection
	}
}
