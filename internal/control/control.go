// Package control encodes and decodes the values of common LDAP controls
// with ber format strings.
package control

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
)

// Control OIDs.
const (
	// PagedResultsOID is the OID for Simple Paged Results Control (RFC 2696).
	PagedResultsOID = "1.2.840.113556.1.4.319"
	// PersistentSearchOID is the OID for draft-ietf-ldapext-psearch.
	PersistentSearchOID = "2.16.840.1.113730.3.4.3"
	// EntryChangeNotificationOID accompanies entries returned by a
	// persistent search.
	EntryChangeNotificationOID = "2.16.840.1.113730.3.4.7"
)

// ErrUnknownControl is returned for a control name or OID this package does
// not handle.
var ErrUnknownControl = errors.New("unknown control")

// Control is an LDAP control as carried in a message.
type Control struct {
	// OID is the control type OID
	OID string
	// Criticality indicates whether the control is critical
	Criticality bool
	// Value is the optional control value
	Value []byte
}

// Find returns the first control with the given OID, or nil.
func Find(controls []Control, oid string) *Control {
	for i := range controls {
		if controls[i].OID == oid {
			return &controls[i]
		}
	}
	return nil
}

// OIDForName maps the short names used on the command line to OIDs.
func OIDForName(name string) (string, error) {
	switch name {
	case "paged", PagedResultsOID:
		return PagedResultsOID, nil
	case "psearch", PersistentSearchOID:
		return PersistentSearchOID, nil
	case "ecn", EntryChangeNotificationOID:
		return EntryChangeNotificationOID, nil
	}
	return "", errors.Wrapf(ErrUnknownControl, "%q", name)
}

// Parse decodes ctrl.Value according to its OID. The result is one of
// *PagedResults, *PersistentSearch or *EntryChangeNotification.
func Parse(codec ber.Codec, ctrl Control) (any, error) {
	switch ctrl.OID {
	case PagedResultsOID:
		return ParsePagedResults(codec, ctrl)
	case PersistentSearchOID:
		return ParsePersistentSearch(codec, ctrl)
	case EntryChangeNotificationOID:
		return ParseEntryChangeNotification(codec, ctrl)
	}
	return nil, errors.Wrapf(ErrUnknownControl, "%q", ctrl.OID)
}
