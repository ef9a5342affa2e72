package catalog

import "github.com/erraggy/oasmodel/model"

func openAPI3Kinds() []*KindSpec {
	methods := []string{"get", "put", "post", "delete", "options", "head", "patch", "trace", "query"}
	pathItem := []FieldSpec{val("$ref"), val("summary"), val("description")}
	for _, m := range methods {
		pathItem = append(pathItem, node(m, model.KindOperation))
	}
	pathItem = append(pathItem, list("servers", model.KindServer), list("parameters", model.KindParameter))

	return []*KindSpec{
		kind(model.KindDocument,
			val("openapi"), node("info", model.KindInfo), val("jsonSchemaDialect"),
			list("servers", model.KindServer), node("paths", model.KindPaths),
			reg("webhooks", model.KindPathItem), node("components", model.KindComponents),
			val("security"), list("tags", model.KindTag), node("externalDocs", model.KindExternalDocs)),
		kind(model.KindInfo,
			val("title"), val("summary"), val("description"), val("termsOfService"),
			node("contact", model.KindContact), node("license", model.KindLicense), val("version")),
		kind(model.KindContact, values("name", "url", "email")...),
		kind(model.KindLicense, values("name", "identifier", "url")...),
		kind(model.KindServer, val("url"), val("description"), reg("variables", model.KindServerVariable)),
		kind(model.KindServerVariable, values("enum", "default", "description")...),
		kind(model.KindComponents,
			reg("schemas", model.KindSchema), reg("responses", model.KindResponse),
			reg("parameters", model.KindParameter), reg("examples", model.KindExample),
			reg("requestBodies", model.KindRequestBody), reg("headers", model.KindHeader),
			reg("securitySchemes", model.KindSecurityScheme), reg("links", model.KindLink),
			reg("callbacks", model.KindCallback), reg("pathItems", model.KindPathItem)),
		keyed(model.KindPaths, model.KindPathItem),
		kind(model.KindPathItem, pathItem...),
		kind(model.KindOperation,
			val("tags"), val("summary"), val("description"), node("externalDocs", model.KindExternalDocs),
			val("operationId"), list("parameters", model.KindParameter),
			node("requestBody", model.KindRequestBody), node("responses", model.KindResponses),
			reg("callbacks", model.KindCallback), val("deprecated"), val("security"),
			list("servers", model.KindServer)),
		kind(model.KindExternalDocs, values("description", "url")...),
		kind(model.KindParameter, fields(
			values("$ref", "name", "in", "description", "required", "deprecated", "allowEmptyValue",
				"style", "explode", "allowReserved"),
			[]FieldSpec{node("schema", model.KindSchema), val("example"),
				reg("examples", model.KindExample), reg("content", model.KindMediaType)},
		)...),
		kind(model.KindRequestBody, val("$ref"), val("description"), reg("content", model.KindMediaType), val("required")),
		kind(model.KindMediaType,
			node("schema", model.KindSchema), val("example"), reg("examples", model.KindExample),
			reg("encoding", model.KindEncoding)),
		kind(model.KindEncoding,
			val("contentType"), reg("headers", model.KindHeader), val("style"), val("explode"), val("allowReserved")),
		keyed(model.KindResponses, model.KindResponse),
		kind(model.KindResponse,
			val("$ref"), val("summary"), val("description"), reg("headers", model.KindHeader),
			reg("content", model.KindMediaType), reg("links", model.KindLink)),
		keyed(model.KindCallback, model.KindPathItem, val("$ref")),
		kind(model.KindExample, values("$ref", "summary", "description", "value", "externalValue")...),
		kind(model.KindLink,
			val("$ref"), val("operationRef"), val("operationId"), val("parameters"), val("requestBody"),
			val("description"), node("server", model.KindServer)),
		kind(model.KindHeader, fields(
			values("$ref", "description", "required", "deprecated", "allowEmptyValue", "style", "explode", "allowReserved"),
			[]FieldSpec{node("schema", model.KindSchema), val("example"),
				reg("examples", model.KindExample), reg("content", model.KindMediaType)},
		)...),
		kind(model.KindTag, val("name"), val("description"), node("externalDocs", model.KindExternalDocs)),
		kind(model.KindSecurityScheme,
			values("$ref", "type", "description", "name", "in", "scheme", "bearerFormat", "flows", "openIdConnectUrl")...),
		kind(model.KindSchema, schemaFields(
			values("$schema", "$id", "$anchor", "$defs", "const", "nullable", "discriminator", "writeOnly",
				"examples", "deprecated", "contentMediaType", "contentEncoding"),
			[]FieldSpec{list("oneOf", model.KindSchema), list("anyOf", model.KindSchema),
				node("not", model.KindSchema), list("prefixItems", model.KindSchema),
				reg("patternProperties", model.KindSchema),
				node("if", model.KindSchema), node("then", model.KindSchema), node("else", model.KindSchema)},
		)...),
	}
}

// schemaFields is the schema keyword set common to every dialect, followed
// by dialect-specific extras.
func schemaFields(extra ...[]FieldSpec) []FieldSpec {
	base := fields(
		values("$ref", "title", "description", "default", "format", "type"),
		jsonSchemaValidation(),
		values("maxProperties", "minProperties", "required", "readOnly", "xml", "example"),
		[]FieldSpec{
			node("externalDocs", model.KindExternalDocs),
			list("allOf", model.KindSchema),
			node("items", model.KindSchema),
			reg("properties", model.KindSchema),
			node("additionalProperties", model.KindSchema),
		},
	)
	return fields(append([][]FieldSpec{base}, extra...)...)
}
