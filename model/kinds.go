package model

// Node kinds shared by the supported dialects. A kind names a role; the
// fields a kind carries for a given document type live in the catalog.
const (
	KindDocument       Kind = "document"
	KindInfo           Kind = "info"
	KindContact        Kind = "contact"
	KindLicense        Kind = "license"
	KindServer         Kind = "server"
	KindServerVariable Kind = "serverVariable"
	KindTag            Kind = "tag"
	KindExternalDocs   Kind = "externalDocs"
	KindComponents     Kind = "components"
	KindSchema         Kind = "schema"
	KindParameter      Kind = "parameter"
	KindSecurityScheme Kind = "securityScheme"
	KindOperation      Kind = "operation"

	// OpenAPI
	KindPaths       Kind = "paths"
	KindPathItem    Kind = "pathItem"
	KindRequestBody Kind = "requestBody"
	KindMediaType   Kind = "mediaType"
	KindEncoding    Kind = "encoding"
	KindResponses   Kind = "responses"
	KindResponse    Kind = "response"
	KindCallback    Kind = "callback"
	KindExample     Kind = "example"
	KindLink        Kind = "link"
	KindHeader      Kind = "header"

	// AsyncAPI
	KindChannels    Kind = "channels"
	KindChannelItem Kind = "channelItem"
	KindMessage     Kind = "message"
)
