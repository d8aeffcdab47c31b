// easyjson marshalers for the wire types, written in the shape easyjson generates.
// Step is encoded as a [category, selector] pair, which easyjson cannot generate.

package command

import (
	json "encoding/json"

	easyjson "github.com/mailru/easyjson"
	jlexer "github.com/mailru/easyjson/jlexer"
	jwriter "github.com/mailru/easyjson/jwriter"
)

// suppress unused package warning
var (
	_ *json.RawMessage
	_ *jlexer.Lexer
	_ *jwriter.Writer
	_ easyjson.Marshaler
)

func easyjsonDecodeInterface(in *jlexer.Lexer) interface{} {
	if in.IsNull() {
		in.Skip()
		return nil
	}
	return in.Interface()
}

func easyjsonEncodeInterface(out *jwriter.Writer, v interface{}) {
	if m, ok := v.(easyjson.Marshaler); ok {
		m.MarshalEasyJSON(out)
	} else if m, ok := v.(json.Marshaler); ok {
		out.Raw(m.MarshalJSON())
	} else {
		out.Raw(json.Marshal(v))
	}
}

func easyjsonDecodeStep(in *jlexer.Lexer, out *Step) {
	if in.IsNull() {
		in.Skip()
		return
	}
	in.Delim('[')
	if !in.IsDelim(']') {
		out.Category = string(in.String())
		in.WantComma()
	}
	if !in.IsDelim(']') {
		out.Selector = easyjsonDecodeInterface(in)
		in.WantComma()
	}
	for !in.IsDelim(']') {
		in.SkipRecursive()
		in.WantComma()
	}
	in.Delim(']')
}

func easyjsonEncodeStep(out *jwriter.Writer, in Step) {
	out.RawByte('[')
	out.String(string(in.Category))
	out.RawByte(',')
	if in.Selector == nil {
		out.RawString("null")
	} else {
		easyjsonEncodeInterface(out, in.Selector)
	}
	out.RawByte(']')
}

func easyjsonDecodeRequest(in *jlexer.Lexer, out *Request) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "selectors":
			in.Delim('[')
			if out.Path == nil {
				if !in.IsDelim(']') {
					out.Path = make(Path, 0, 4)
				} else {
					out.Path = Path{}
				}
			} else {
				out.Path = (out.Path)[:0]
			}
			for !in.IsDelim(']') {
				var v1 Step
				easyjsonDecodeStep(in, &v1)
				out.Path = append(out.Path, v1)
				in.WantComma()
			}
			in.Delim(']')
		case "name":
			out.Name = string(in.String())
		case "args":
			in.Delim('[')
			if out.Args == nil {
				if !in.IsDelim(']') {
					out.Args = make([]interface{}, 0, 4)
				} else {
					out.Args = []interface{}{}
				}
			} else {
				out.Args = (out.Args)[:0]
			}
			for !in.IsDelim(']') {
				out.Args = append(out.Args, easyjsonDecodeInterface(in))
				in.WantComma()
			}
			in.Delim(']')
		case "kwargs":
			in.Delim('{')
			out.Kwargs = make(map[string]interface{})
			for !in.IsDelim('}') {
				key := string(in.String())
				in.WantColon()
				out.Kwargs[key] = easyjsonDecodeInterface(in)
				in.WantComma()
			}
			in.Delim('}')
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func easyjsonEncodeRequest(out *jwriter.Writer, in Request) {
	out.RawByte('{')
	{
		const prefix string = ",\"selectors\":"
		out.RawString(prefix[1:])
		out.RawByte('[')
		for i, v := range in.Path {
			if i > 0 {
				out.RawByte(',')
			}
			easyjsonEncodeStep(out, v)
		}
		out.RawByte(']')
	}
	{
		const prefix string = ",\"name\":"
		out.RawString(prefix)
		out.String(string(in.Name))
	}
	{
		const prefix string = ",\"args\":"
		out.RawString(prefix)
		out.RawByte('[')
		for i, v := range in.Args {
			if i > 0 {
				out.RawByte(',')
			}
			easyjsonEncodeInterface(out, v)
		}
		out.RawByte(']')
	}
	{
		const prefix string = ",\"kwargs\":"
		out.RawString(prefix)
		out.RawByte('{')
		first := true
		for k, v := range in.Kwargs {
			if first {
				first = false
			} else {
				out.RawByte(',')
			}
			out.String(string(k))
			out.RawByte(':')
			easyjsonEncodeInterface(out, v)
		}
		out.RawByte('}')
	}
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface
func (v Request) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	easyjsonEncodeRequest(&w, v)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Request) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodeRequest(w, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *Request) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	easyjsonDecodeRequest(&r, v)
	return r.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Request) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeRequest(l, v)
}

func easyjsonDecodeResponse(in *jlexer.Lexer, out *Response) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeString()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "status":
			out.Status = Status(in.Int())
		case "payload":
			out.Payload = easyjsonDecodeInterface(in)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func easyjsonEncodeResponse(out *jwriter.Writer, in Response) {
	out.RawByte('{')
	{
		const prefix string = ",\"status\":"
		out.RawString(prefix[1:])
		out.Int(int(in.Status))
	}
	{
		const prefix string = ",\"payload\":"
		out.RawString(prefix)
		if in.Payload == nil {
			out.RawString("null")
		} else {
			easyjsonEncodeInterface(out, in.Payload)
		}
	}
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface
func (v Response) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	easyjsonEncodeResponse(&w, v)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Response) MarshalEasyJSON(w *jwriter.Writer) {
	easyjsonEncodeResponse(w, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *Response) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	easyjsonDecodeResponse(&r, v)
	return r.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Response) UnmarshalEasyJSON(l *jlexer.Lexer) {
	easyjsonDecodeResponse(l, v)
}
