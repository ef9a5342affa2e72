package catalog

import "github.com/erraggy/oasmodel/model"

func openAPI2Kinds() []*KindSpec {
	pathItem := []FieldSpec{val("$ref")}
	for _, m := range []string{"get", "put", "post", "delete", "options", "head", "patch"} {
		pathItem = append(pathItem, node(m, model.KindOperation))
	}
	pathItem = append(pathItem, list("parameters", model.KindParameter))

	// Non-body parameters and headers describe primitives inline.
	primitive := fields(values("type", "format", "items", "collectionFormat", "default"), jsonSchemaValidation())

	return []*KindSpec{
		kind(model.KindDocument,
			val("swagger"), node("info", model.KindInfo), val("host"), val("basePath"), val("schemes"),
			val("consumes"), val("produces"), node("paths", model.KindPaths),
			reg("definitions", model.KindSchema), reg("parameters", model.KindParameter),
			reg("responses", model.KindResponse), reg("securityDefinitions", model.KindSecurityScheme),
			val("security"), list("tags", model.KindTag), node("externalDocs", model.KindExternalDocs)),
		kind(model.KindInfo,
			val("title"), val("description"), val("termsOfService"),
			node("contact", model.KindContact), node("license", model.KindLicense), val("version")),
		kind(model.KindContact, values("name", "url", "email")...),
		kind(model.KindLicense, values("name", "url")...),
		keyed(model.KindPaths, model.KindPathItem),
		kind(model.KindPathItem, pathItem...),
		kind(model.KindOperation,
			val("tags"), val("summary"), val("description"), node("externalDocs", model.KindExternalDocs),
			val("operationId"), val("consumes"), val("produces"), list("parameters", model.KindParameter),
			node("responses", model.KindResponses), val("schemes"), val("deprecated"), val("security")),
		kind(model.KindExternalDocs, values("description", "url")...),
		kind(model.KindParameter, fields(
			values("$ref", "name", "in", "description", "required", "allowEmptyValue"),
			[]FieldSpec{node("schema", model.KindSchema)},
			primitive,
		)...),
		keyed(model.KindResponses, model.KindResponse),
		kind(model.KindResponse,
			val("$ref"), val("description"), node("schema", model.KindSchema),
			reg("headers", model.KindHeader), val("examples")),
		kind(model.KindHeader, fields(values("description"), primitive)...),
		kind(model.KindTag, val("name"), val("description"), node("externalDocs", model.KindExternalDocs)),
		kind(model.KindSecurityScheme,
			values("type", "description", "name", "in", "flow", "authorizationUrl", "tokenUrl", "scopes")...),
		kind(model.KindSchema, schemaFields(values("discriminator"))...),
	}
}
