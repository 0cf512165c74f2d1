package models

import (
	"github.com/miekg/dns"
)

// RecordType is a DNS record type filter. RecordTypeAll means no filter.
type RecordType string

const (
	RecordTypeAll   RecordType = "ALL"
	RecordTypeA     RecordType = "A"
	RecordTypeAAAA  RecordType = "AAAA"
	RecordTypeNS    RecordType = "NS"
	RecordTypeCNAME RecordType = "CNAME"
	RecordTypeMX    RecordType = "MX"
	RecordTypeTXT   RecordType = "TXT"
	RecordTypeSVCB  RecordType = "SVCB"
	RecordTypeHTTPS RecordType = "HTTPS"
)

func AllRecordTypes() []RecordType {
	return []RecordType{
		RecordTypeAll,
		RecordTypeA,
		RecordTypeAAAA,
		RecordTypeNS,
		RecordTypeCNAME,
		RecordTypeMX,
		RecordTypeTXT,
		RecordTypeSVCB,
		RecordTypeHTTPS,
	}
}

// IsFilter reports whether the type narrows results, i.e. it is set and not ALL.
func (r RecordType) IsFilter() bool {
	return r != "" && r != RecordTypeAll
}

// QType returns the DNS wire type code. ok is false for ALL, unset or
// unknown types.
func (r RecordType) QType() (qtype uint16, ok bool) {
	if !r.IsFilter() {
		return 0, false
	}
	qtype, ok = dns.StringToType[string(r)]
	return qtype, ok
}
