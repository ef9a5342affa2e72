// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SimpleOAS3 is the smallest valid OpenAPI 3 document.
const SimpleOAS3 = `{"openapi":"3.0.2","info":{"title":"Very Simple API","version":"1.0.0"}}`

// DetailedOAS3 exercises every container shape of OpenAPI 3 along with
// extensions at several levels.
const DetailedOAS3 = `openapi: 3.1.0
info:
  title: Pet Store
  summary: Sample pet store
  version: 1.2.3
  contact:
    name: API Team
    email: api@example.com
    url: https://example.com
  license:
    name: Apache 2.0
    identifier: Apache-2.0
  x-audience: public
servers:
  - url: https://{env}.example.com/v1
    description: Main
    variables:
      env:
        default: api
        enum: [api, staging]
  - url: http://localhost:8080
tags:
  - name: pets
    description: Everything about pets
    externalDocs:
      url: https://example.com/docs
paths:
  /pets:
    summary: Pets
    get:
      operationId: listPets
      tags: [pets]
      parameters:
        - name: limit
          in: query
          required: false
          schema:
            type: integer
            format: int32
            maximum: 100
        - $ref: '#/components/parameters/Offset'
      responses:
        '200':
          description: A page of pets
          headers:
            X-Next:
              description: Next page
              schema:
                type: string
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
              examples:
                one:
                  value: [{id: 1, name: Rex}]
        default:
          $ref: '#/components/responses/NotFoundError'
        x-ratelimit: 10
      callbacks:
        onEvent:
          '{$request.body#/url}':
            post:
              requestBody:
                content:
                  application/json:
                    schema:
                      type: object
              responses:
                '204':
                  description: ok
    post:
      operationId: createPet
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
            encoding:
              tags:
                contentType: text/plain
      responses:
        '201':
          description: Created
          links:
            self:
              operationId: getPet
              parameters:
                id: $response.body#/id
  x-paths-meta:
    owner: team-a
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
          pattern: ^[A-Z]
        tags:
          type: array
          items:
            type: string
        meta:
          type: object
          additionalProperties: false
        owner:
          oneOf:
            - $ref: '#/components/schemas/Person'
            - type: 'null'
      x-go-type: model.Pet
    Person:
      type: object
      properties:
        name:
          type: string
      additionalProperties:
        type: string
  parameters:
    Offset:
      name: offset
      in: query
      schema:
        type: integer
        minimum: 0
  responses:
    NotFoundError:
      description: Not found
      content:
        application/json:
          schema:
            type: object
            properties:
              message:
                type: string
  securitySchemes:
    bearer:
      type: http
      scheme: bearer
      bearerFormat: JWT
security:
  - bearer: []
externalDocs:
  url: https://example.com
x-root-extension:
  nested: [1, 2.5, true, null, "3.0"]
`

// SimpleOAS2 is a minimal OpenAPI 2 document.
const SimpleOAS2 = `{"swagger":"2.0","info":{"title":"Test API","version":"1.0.0"},"host":"api.example.com","basePath":"/v1","schemes":["https"],"paths":{}}`

// DetailedOAS2 exercises the OpenAPI 2 containers.
const DetailedOAS2 = `swagger: "2.0"
info:
  title: Test API
  version: 1.0.0
host: api.example.com
basePath: /v1
schemes: [https]
consumes: [application/json]
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          type: integer
          format: int32
        - name: body
          in: body
          schema:
            $ref: '#/definitions/Pet'
      responses:
        '200':
          description: OK
          schema:
            type: array
            items:
              $ref: '#/definitions/Pet'
          headers:
            X-Rate:
              type: integer
        default:
          $ref: '#/responses/NotFoundError'
definitions:
  Pet:
    type: object
    properties:
      id:
        type: integer
      name:
        type: string
    x-nullable: false
responses:
  NotFoundError:
    description: Not found
securityDefinitions:
  key:
    type: apiKey
    name: X-Key
    in: header
tags:
  - name: pets
x-generator: hand
`

// SimpleAsyncAPI2 is a minimal AsyncAPI 2 document.
const SimpleAsyncAPI2 = `{"asyncapi":"2.6.0","id":"urn:example:api","info":{"title":"Events","version":"1.0.0"},"channels":{}}`

// DetailedAsyncAPI2 exercises the AsyncAPI 2 containers.
const DetailedAsyncAPI2 = `asyncapi: 2.6.0
id: urn:example:api
info:
  title: Account Service
  version: 1.0.0
  contact:
    email: events@example.com
servers:
  production:
    url: broker.example.com:{port}
    protocol: mqtt
    variables:
      port:
        default: "1883"
        enum: ["1883", "8883"]
defaultContentType: application/json
channels:
  user/signedup:
    description: User sign-ups
    parameters:
      userId:
        schema:
          type: string
    subscribe:
      operationId: onSignup
      message:
        $ref: '#/components/messages/UserSignedUp'
    x-channel-meta: 1
components:
  messages:
    UserSignedUp:
      name: userSignedUp
      payload:
        type: object
        properties:
          displayName:
            type: string
          email:
            type: string
            format: email
  schemas:
    Account:
      type: object
      properties:
        id:
          type: string
tags:
  - name: accounts
`

// WriteTemp writes content to a file called name in a fresh temporary
// directory and returns its path. The directory is removed at test cleanup.
func WriteTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
