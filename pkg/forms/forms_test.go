package forms

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func TestFlexBool_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`"true"`, true},
		{`"True"`, true},
		{`"on"`, true},
		{`"1"`, true},
		{`1`, true},
		{`false`, false},
		{`"false"`, false},
		{`"yes"`, false},
		{`"TRUE"`, false},
		{`0`, false},
		{`2`, false},
		{`""`, false},
		{`null`, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var b FlexBool
			if err := json.Unmarshal([]byte(tt.raw), &b); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.raw, err)
			}
			if bool(b) != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.raw, b, tt.want)
			}
		})
	}
}

func TestFlexBool_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		Flag FlexBool `json:"flag"`
	}{Flag: FlexBool(true)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `{"flag":true}` {
		t.Errorf("Marshal() = %s", raw)
	}
}

func TestDecode_JSON(t *testing.T) {
	body := `{"name":"Afi","email":"afi@example.org","subject":"Hello","message":"Hi","agree_privacy":"on","agree_coc":true}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	var msg ContactMessage
	if err := Decode(req, &msg); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if msg.Name != "Afi" || msg.Subject != "Hello" {
		t.Errorf("msg = %+v", msg)
	}
	if !msg.AgreePrivacy || !msg.AgreeCoC {
		t.Errorf("consent flags = %v, %v", msg.AgreePrivacy, msg.AgreeCoC)
	}
}

func TestDecode_FormEncoded(t *testing.T) {
	values := url.Values{
		"name":          {"  Kossi  "},
		"email":         {"kossi@example.org"},
		"phone":         {"+22890000000"},
		"agree_privacy": {"on"},
		"agree_coc":     {"1"},
	}
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/join", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var join JoinRequest
	if err := Decode(req, &join); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if join.Name != "Kossi" {
		t.Errorf("Name = %q, want trimmed", join.Name)
	}
	if join.Phone != "+22890000000" {
		t.Errorf("Phone = %q", join.Phone)
	}
	if !join.AgreePrivacy || !join.AgreeCoC {
		t.Errorf("consent flags = %v, %v", join.AgreePrivacy, join.AgreeCoC)
	}
}

func TestDecode_FormConsentFalsyValues(t *testing.T) {
	for _, v := range []string{"", "off", "false", "0", "no"} {
		values := url.Values{"agree_privacy": {v}}
		req, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var join JoinRequest
		if err := Decode(req, &join); err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		if join.AgreePrivacy {
			t.Errorf("value %q decoded as consent given", v)
		}
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")

	var join JoinRequest
	err := Decode(req, &join)
	if err != ErrMalformedPayload {
		t.Errorf("Decode() error = %v, want ErrMalformedPayload", err)
	}
}

func TestDecode_BothContentTypesSameShape(t *testing.T) {
	jsonReq, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(
		`{"organization":"Acme","contact_name":"Ama","email":"ama@example.org","agree_privacy":"1","agree_coc":"1"}`))
	jsonReq.Header.Set("Content-Type", "application/json")

	values := url.Values{
		"organization":  {"Acme"},
		"contact_name":  {"Ama"},
		"email":         {"ama@example.org"},
		"agree_privacy": {"1"},
		"agree_coc":     {"1"},
	}
	formReq, _ := http.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	formReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var fromJSON, fromForm PartnershipRequest
	if err := Decode(jsonReq, &fromJSON); err != nil {
		t.Fatalf("Decode(json) error = %v", err)
	}
	if err := Decode(formReq, &fromForm); err != nil {
		t.Fatalf("Decode(form) error = %v", err)
	}
	if fromJSON != fromForm {
		t.Errorf("decoded shapes differ:\njson: %+v\nform: %+v", fromJSON, fromForm)
	}
}
