package netsym

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/njchilds90/netsym/sym"
)

// ============================================================
// Tool-call surface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

var domainsByName = map[string]Domain{
	"constant":         ConstantDomain,
	"time":             TimeDomain,
	"laplace":          LaplaceDomain,
	"fourier":          FourierDomain,
	"angular":          AngularFourierDomain,
	"angular fourier":  AngularFourierDomain,
	"phasor":           PhasorDomain,
	"discrete time":    DiscreteTimeDomain,
	"z":                ZDomain,
	"discrete fourier": DiscreteFourierDomain,
	"noise":            NoiseDomain,
}

var rolesByName = map[string]Role{
	"undefined":  Undefined,
	"voltage":    Voltage,
	"current":    Current,
	"impedance":  Impedance,
	"admittance": Admittance,
	"transfer":   Transfer,
}

func HandleToolCall(req ToolRequest) ToolResponse {
	getExpr := func(key string) (sym.Expr, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("invalid param %s: %v", key, err)
		}
		return sym.UnmarshalExpr(data)
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getDomain := func(key string) (Domain, error) {
		s, err := getString(key)
		if err != nil {
			return 0, err
		}
		d, ok := domainsByName[strings.ToLower(s)]
		if !ok {
			return 0, fmt.Errorf("unknown domain: %s", s)
		}
		return d, nil
	}
	getRole := func() (Role, error) {
		v, ok := req.Params["role"]
		if !ok {
			return Undefined, nil
		}
		s, ok := v.(string)
		if !ok {
			return Undefined, fmt.Errorf("param role must be a string")
		}
		r, ok := rolesByName[strings.ToLower(s)]
		if !ok {
			return Undefined, fmt.Errorf("unknown role: %s", s)
		}
		return r, nil
	}
	getTyped := func() (Expr, error) {
		e, err := getExpr("expr")
		if err != nil {
			return Expr{}, err
		}
		d, err := getDomain("domain")
		if err != nil {
			return Expr{}, err
		}
		r, err := getRole()
		if err != nil {
			return Expr{}, err
		}
		return New(d, r, e)
	}
	respond := func(x Expr) ToolResponse {
		node, err := sym.MarshalExpr(x.Sym())
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{
			Result: map[string]interface{}{
				"expr":        json.RawMessage(node),
				"domain":      x.Domain().String(),
				"role":        x.Role().String(),
				"assumptions": x.Assumptions().String(),
			},
			String: x.String(),
		}
	}

	switch req.Tool {
	case "classify":
		x, err := getTyped()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(x)

	case "transform":
		x, err := getTyped()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		to, err := getDomain("to")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		var out Expr
		switch to {
		case TimeDomain:
			out, err = x.Time()
		case LaplaceDomain:
			out, err = x.Laplace()
		case FourierDomain:
			out, err = x.Fourier()
		case AngularFourierDomain:
			out, err = x.AngularFourier()
		case PhasorDomain:
			out, err = x.Phasor()
		case ZDomain:
			out, err = x.Z()
		default:
			err = fmt.Errorf("no transform targets the %s domain", to)
		}
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(out)

	case "decompose":
		x, err := getTyped()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		sp := NewSuperposition(x.Role())
		if err := sp.Add(x); err != nil {
			return ToolResponse{Error: err.Error()}
		}
		comps := map[string]interface{}{}
		for _, key := range sp.Keys() {
			c, _ := sp.Component(key)
			comps[key] = c.String()
		}
		return ToolResponse{Result: comps, String: sp.String()}

	case "evaluate":
		x, err := getTyped()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		ptsAny, ok := req.Params["points"]
		if !ok {
			return ToolResponse{Error: "missing param: points"}
		}
		rawPts, ok := ptsAny.([]interface{})
		if !ok {
			return ToolResponse{Error: "param points must be an array of numbers"}
		}
		pts := make([]float64, len(rawPts))
		for i, p := range rawPts {
			f, ok := p.(float64)
			if !ok {
				return ToolResponse{Error: "param points must be an array of numbers"}
			}
			pts[i] = f
		}
		vals, err := x.Evaluate(pts...)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out := make([][2]float64, len(vals))
		strs := make([]string, len(vals))
		for i, v := range vals {
			out[i] = [2]float64{real(v), imag(v)}
			strs[i] = fmt.Sprintf("%v", v)
		}
		return ToolResponse{Result: out, String: strings.Join(strs, ", ")}

	case "partfrac":
		x, err := getTyped()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		out, err := x.Partfrac()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(out)

	case "poles_zeros":
		x, err := getTyped()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		gain, zeros, poles, err := x.ZPK()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		zs := make([]string, len(zeros))
		for i, z := range zeros {
			zs[i] = z.String()
		}
		ps := make([]string, len(poles))
		for i, p := range poles {
			ps[i] = p.String()
		}
		return ToolResponse{
			Result: map[string]interface{}{"gain": gain.String(), "zeros": zs, "poles": ps},
			String: fmt.Sprintf("gain %s, zeros %v, poles %v", gain, zs, ps),
		}

	case "magnitude_phase":
		x, err := getTyped()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		mag := x.Magnitude()
		phase, err := x.Phase()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{
			Result: map[string]interface{}{"magnitude": mag.String(), "phase": phase.String()},
			String: fmt.Sprintf("|%s| = %s, arg = %s", x, mag, phase),
		}

	case "spec":
		return ToolResponse{Result: ToolSpec(), String: "tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// Tool spec
// ============================================================

func ToolSpec() []map[string]interface{} {
	return []map[string]interface{}{
		ts("classify", "Validate and classify a typed expression", []string{"expr", "domain"},
			map[string]string{"expr": "object", "domain": "string", "role": "string"}),
		ts("transform", "Convert an expression to another domain", []string{"expr", "domain", "to"},
			map[string]string{"expr": "object", "domain": "string", "role": "string", "to": "string"}),
		ts("decompose", "Split a time signal into dc, phasor and s components", []string{"expr", "domain"},
			map[string]string{"expr": "object", "domain": "string", "role": "string"}),
		ts("evaluate", "Evaluate at points of the domain variable", []string{"expr", "domain", "points"},
			map[string]string{"expr": "object", "domain": "string", "points": "array"}),
		ts("partfrac", "Partial fraction decomposition in the domain variable", []string{"expr", "domain"},
			map[string]string{"expr": "object", "domain": "string"}),
		ts("poles_zeros", "Gain, zeros and poles of a rational expression", []string{"expr", "domain"},
			map[string]string{"expr": "object", "domain": "string"}),
		ts("magnitude_phase", "Magnitude and phase of a complex expression", []string{"expr", "domain"},
			map[string]string{"expr": "object", "domain": "string"}),
	}
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
