// Package schema checks decoded JSON and YAML documents before they are
// mapped onto Go structs, so a malformed save file or story document is
// rejected with a field-by-field report instead of a half-filled value.
//
//	frame := schema.Schema{
//	    "includeId": schema.String(),
//	    "returnTo":  schema.Optional(schema.String()),
//	}
//	save := schema.Schema{
//	    "version":  schema.String(),
//	    "snapshot": schema.Object(schema.Schema{
//	        "stack":     schema.Slice(schema.Object(frame)),
//	        "variables": schema.Map(schema.Scalar()),
//	        "visited":   schema.Map(schema.Int()),
//	    }),
//	}
//
//	if err := schema.Validate(save, decoded); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
package schema
