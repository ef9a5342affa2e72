package catalog

import "github.com/erraggy/oasmodel/model"

func asyncAPI2Kinds() []*KindSpec {
	return []*KindSpec{
		kind(model.KindDocument,
			val("asyncapi"), val("id"), node("info", model.KindInfo), reg("servers", model.KindServer),
			val("defaultContentType"), node("channels", model.KindChannels),
			node("components", model.KindComponents), list("tags", model.KindTag),
			node("externalDocs", model.KindExternalDocs)),
		kind(model.KindInfo,
			val("title"), val("version"), val("description"), val("termsOfService"),
			node("contact", model.KindContact), node("license", model.KindLicense)),
		kind(model.KindContact, values("name", "url", "email")...),
		kind(model.KindLicense, values("name", "url")...),
		kind(model.KindServer,
			val("url"), val("protocol"), val("protocolVersion"), val("description"),
			reg("variables", model.KindServerVariable), val("security"), list("tags", model.KindTag),
			val("bindings")),
		kind(model.KindServerVariable, values("enum", "default", "description", "examples")...),
		keyed(model.KindChannels, model.KindChannelItem),
		kind(model.KindChannelItem,
			val("$ref"), val("description"), val("servers"),
			node("subscribe", model.KindOperation), node("publish", model.KindOperation),
			reg("parameters", model.KindParameter), val("bindings")),
		kind(model.KindOperation,
			val("operationId"), val("summary"), val("description"), val("security"),
			list("tags", model.KindTag), node("externalDocs", model.KindExternalDocs),
			val("bindings"), val("traits"), node("message", model.KindMessage)),
		kind(model.KindMessage,
			val("$ref"), val("messageId"), node("headers", model.KindSchema), node("payload", model.KindSchema),
			val("correlationId"), val("schemaFormat"), val("contentType"), val("name"), val("title"),
			val("summary"), val("description"), list("tags", model.KindTag),
			node("externalDocs", model.KindExternalDocs), val("bindings"), val("examples"), val("traits"),
			list("oneOf", model.KindMessage)),
		kind(model.KindParameter, val("$ref"), val("description"), node("schema", model.KindSchema), val("location")),
		kind(model.KindComponents,
			reg("schemas", model.KindSchema), reg("servers", model.KindServer),
			reg("serverVariables", model.KindServerVariable), reg("channels", model.KindChannelItem),
			reg("messages", model.KindMessage), reg("securitySchemes", model.KindSecurityScheme),
			reg("parameters", model.KindParameter), val("correlationIds"), val("operationTraits"),
			val("messageTraits"), val("serverBindings"), val("channelBindings"),
			val("operationBindings"), val("messageBindings")),
		kind(model.KindExternalDocs, values("description", "url")...),
		kind(model.KindTag, val("name"), val("description"), node("externalDocs", model.KindExternalDocs)),
		kind(model.KindSecurityScheme,
			values("$ref", "type", "description", "name", "in", "scheme", "bearerFormat", "flows", "openIdConnectUrl")...),
		kind(model.KindSchema, schemaFields(
			values("$id", "const", "discriminator", "writeOnly", "examples", "deprecated", "contains",
				"propertyNames", "dependencies"),
			[]FieldSpec{list("oneOf", model.KindSchema), list("anyOf", model.KindSchema),
				node("not", model.KindSchema),
				node("if", model.KindSchema), node("then", model.KindSchema), node("else", model.KindSchema)},
		)...),
	}
}
