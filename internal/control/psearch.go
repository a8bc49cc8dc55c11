package control

import (
	"github.com/pkg/errors"

	"github.com/KilimcininKorOglu/berconv/internal/ber"
)

// Change types for persistent search and entry change notification.
const (
	ChangeTypeAdd    = 1
	ChangeTypeDelete = 2
	ChangeTypeModify = 4
	ChangeTypeModDN  = 8

	changeTypeAll = ChangeTypeAdd | ChangeTypeDelete | ChangeTypeModify | ChangeTypeModDN
)

var (
	psearchEncodeFormat = ber.MustParseEncodeFormat("{ibb}")
	psearchDecodeFormat = ber.MustParseDecodeFormat("{ibb}")
)

// PersistentSearch represents the Persistent Search Control.
//
//	PersistentSearch ::= SEQUENCE {
//	    changeTypes INTEGER,
//	    changesOnly BOOLEAN,
//	    returnECs   BOOLEAN
//	}
type PersistentSearch struct {
	ChangeTypes int  // Bitmask: 1=add, 2=delete, 4=modify, 8=modDN
	ChangesOnly bool // If true, only return changes (not initial entries)
	ReturnECs   bool // If true, include Entry Change Notification control
	Criticality bool
}

// ParsePersistentSearch parses a Persistent Search Control. A control
// without a value asks for every change type with notifications.
func ParsePersistentSearch(codec ber.Codec, ctrl Control) (*PersistentSearch, error) {
	psc := &PersistentSearch{
		Criticality: ctrl.Criticality,
		ChangeTypes: changeTypeAll,
		ReturnECs:   true,
	}
	if len(ctrl.Value) == 0 {
		return psc, nil
	}

	values, err := codec.DecodeFormat(psearchDecodeFormat, ctrl.Value)
	if err != nil {
		return nil, errors.Wrap(err, "persistent search control")
	}
	changeTypes := int64(values[0].(ber.Int))
	if changeTypes&^changeTypeAll != 0 {
		return nil, errors.Errorf("persistent search control: change types %#x", changeTypes)
	}
	psc.ChangeTypes = int(changeTypes)
	psc.ChangesOnly = bool(values[1].(ber.Bool))
	psc.ReturnECs = bool(values[2].(ber.Bool))
	return psc, nil
}

// Encode encodes the control value.
func (p *PersistentSearch) Encode(codec ber.Codec) ([]byte, error) {
	return codec.EncodeFormat(psearchEncodeFormat, ber.Int(p.ChangeTypes), ber.Bool(p.ChangesOnly), ber.Bool(p.ReturnECs))
}

// EntryChangeNotification represents the Entry Change Notification control.
//
//	EntryChangeNotification ::= SEQUENCE {
//	    changeType ENUMERATED { add(1), delete(2), modify(4), modDN(8) },
//	    previousDN LDAPDN OPTIONAL,
//	    changeNumber INTEGER OPTIONAL
//	}
type EntryChangeNotification struct {
	ChangeType   int
	PreviousDN   string // Only for modDN
	ChangeNumber int64
}

// Encode encodes the control value. PreviousDN and ChangeNumber are written
// only when set.
func (ecn *EntryChangeNotification) Encode(codec ber.Codec) ([]byte, error) {
	format := "{e"
	values := []ber.Value{ber.Int(ecn.ChangeType)}
	if ecn.PreviousDN != "" {
		format += "s"
		values = append(values, ber.String(ecn.PreviousDN))
	}
	if ecn.ChangeNumber > 0 {
		format += "i"
		values = append(values, ber.Int(ecn.ChangeNumber))
	}
	return codec.Encode(format+"}", values...)
}

// ParseEntryChangeNotification parses an Entry Change Notification. Format
// strings do not check tags, so the optional members are found by a tag scan
// first and the value is then decoded with the matching format.
func ParseEntryChangeNotification(codec ber.Codec, ctrl Control) (*EntryChangeNotification, error) {
	format, err := entryChangeFormat(ctrl.Value)
	if err != nil {
		return nil, errors.Wrap(err, "entry change notification")
	}
	values, err := codec.Decode(format, ctrl.Value)
	if err != nil {
		return nil, errors.Wrap(err, "entry change notification")
	}

	ecn := &EntryChangeNotification{ChangeType: int(values[0].(ber.Int))}
	for _, v := range values[1:] {
		switch t := v.(type) {
		case ber.String:
			ecn.PreviousDN = string(t)
		case ber.Int:
			ecn.ChangeNumber = int64(t)
		}
	}
	return ecn, nil
}

// entryChangeFormat builds the decode format for an entry change
// notification from the tags of its members.
func entryChangeFormat(value []byte) (string, error) {
	dec := ber.NewBERDecoder(value)
	if _, err := dec.Enter(); err != nil {
		return "", err
	}

	format := []byte{'{'}
	for dec.Remaining() > 0 {
		tag, _, err := dec.ReadElement()
		if err != nil {
			return "", err
		}
		n := len(format) - 1
		switch {
		case n == 0 && tag == ber.TagEnumerated:
			format = append(format, 'e')
		case n == 1 && tag == ber.TagOctetString:
			format = append(format, 'a')
		case n >= 1 && n <= 2 && tag == ber.TagInteger && format[n] != 'i':
			format = append(format, 'i')
		default:
			return "", errors.Errorf("unexpected tag %#x at member %d", uint32(tag), n)
		}
	}
	if len(format) == 1 {
		return "", errors.New("missing change type")
	}
	return string(append(format, '}')), nil
}
