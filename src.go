package ldap

/*
src.go declares the RFC marker types used throughout this package as method
receivers, grouping constructors and parsers by the document that defines
the grammar they implement. This is the same convention the upstream
go-dirsyn package uses to namespace its syntax checkers.
*/

/*
RFC4511 serves as the receiver type for definitions sourced from RFC 4511,
the LDAPv3 protocol document: search scopes, protocol operations and the
LDAPMessage envelope.
*/
type RFC4511 struct{}

func (r RFC4511) URL() string { return `https://datatracker.ietf.org/doc/html/rfc4511` }

/*
RFC4512 serves as the receiver type for definitions sourced from RFC 4512
(directory information models): OID and descriptor syntax.
*/
type RFC4512 struct{}

func (r RFC4512) URL() string { return `https://datatracker.ietf.org/doc/html/rfc4512` }

/*
RFC4513 serves as the receiver type for definitions sourced from RFC 4513
(authentication methods): SASL bind mechanisms and StartTLS.
*/
type RFC4513 struct{}

func (r RFC4513) URL() string { return `https://datatracker.ietf.org/doc/html/rfc4513` }

/*
RFC4514 serves as the receiver type for definitions sourced from RFC 4514
(string representation of distinguished names).
*/
type RFC4514 struct{}

func (r RFC4514) URL() string { return `https://datatracker.ietf.org/doc/html/rfc4514` }

/*
RFC4515 serves as the receiver type for definitions sourced from RFC 4515
(string representation of search filters).
*/
type RFC4515 struct{}

func (r RFC4515) URL() string { return `https://datatracker.ietf.org/doc/html/rfc4515` }

/*
RFC4516 serves as the receiver type for definitions sourced from RFC 4516
(the LDAP URL format).
*/
type RFC4516 struct{}

func (r RFC4516) URL() string { return `https://datatracker.ietf.org/doc/html/rfc4516` }

/*
RFC4517 serves as the receiver type for definitions sourced from RFC 4517
(syntaxes and matching rules).
*/
type RFC4517 struct{}

func (r RFC4517) URL() string { return `https://datatracker.ietf.org/doc/html/rfc4517` }
