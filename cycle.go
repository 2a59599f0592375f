package hangar

import "context"

type resolutionChainKey struct{}

// resolutionLink is one dependency being resolved, linked to the resolution
// that requested it.
type resolutionLink struct {
	scope  string
	name   string
	parent *resolutionLink
}

// enterResolution records (scope, name) on the chain carried by ctx and
// fails if it is already being resolved further up.
func enterResolution(ctx context.Context, scope, name string) (context.Context, error) {
	parent, _ := ctx.Value(resolutionChainKey{}).(*resolutionLink)
	for link := parent; link != nil; link = link.parent {
		if link.scope == scope && link.name == name {
			return ctx, ErrCircularDependency(append(chainOf(parent), name))
		}
	}
	return context.WithValue(ctx, resolutionChainKey{}, &resolutionLink{scope: scope, name: name, parent: parent}), nil
}

// ResolutionPath returns the names being resolved in ctx, outermost first.
func ResolutionPath(ctx context.Context) []string {
	link, _ := ctx.Value(resolutionChainKey{}).(*resolutionLink)
	return chainOf(link)
}

func chainOf(link *resolutionLink) []string {
	var names []string
	for ; link != nil; link = link.parent {
		names = append(names, link.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}
