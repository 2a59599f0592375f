package hangar

// Registration pairs a name with its definition for batch registration.
type Registration struct {
	Name       string
	Definition Definition
}

// Dependency creates a Registration.
//
// Example:
//
//	err := hangar.AddAll(c,
//	    hangar.Dependency("config", hangar.Object(cfg)),
//	    hangar.Dependency("clock", hangar.Callback(newClock)),
//	)
func Dependency(name string, def Definition) Registration {
	return Registration{
		Name:       name,
		Definition: def,
	}
}

// AddAll adds each registration in order, stopping at the first error.
func AddAll(c *Container, registrations ...Registration) error {
	for _, reg := range registrations {
		if err := c.Add(reg.Name, reg.Definition); err != nil {
			return err
		}
	}
	return nil
}

// SetAll sets each registration in order, stopping at the first error.
func SetAll(c *Container, registrations ...Registration) error {
	for _, reg := range registrations {
		if err := c.Set(reg.Name, reg.Definition); err != nil {
			return err
		}
	}
	return nil
}
