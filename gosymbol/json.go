package gosymbol

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// ToMap returns the JSON object form of e.
func ToMap(e Expr) map[string]interface{} { return e.toJSON() }

// ParseJSON decodes an expression from its JSON text.
func ParseJSON(data []byte) (Expr, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(obj)
}

func FromJSON(data map[string]interface{}) (Expr, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (map[string]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return m, nil
	}

	subArray := func(field string) ([]interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		return raw, nil
	}

	subExprs := func(field string) ([]Expr, error) {
		raw, err := subArray(field)
		if err != nil {
			return nil, err
		}
		out := make([]Expr, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			e, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = e
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	switch typ {
	case "num":
		val, err := subString("value")
		if err != nil {
			return nil, err
		}
		r := new(big.Rat)
		if _, ok := r.SetString(val); !ok {
			return nil, fmt.Errorf("invalid num value: %s", val)
		}
		return &Num{val: r}, nil

	case "sym":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return S(name), nil

	case "add":
		terms, err := subExprs("terms")
		if err != nil {
			return nil, err
		}
		return AddOf(terms...), nil

	case "mul":
		factors, err := subExprs("factors")
		if err != nil {
			return nil, err
		}
		return MulOf(factors...), nil

	case "pow":
		baseM, err := subObj("base")
		if err != nil {
			return nil, err
		}
		expM, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		base, err := FromJSON(baseM)
		if err != nil {
			return nil, fmt.Errorf("pow: base: %w", err)
		}
		exp, err := FromJSON(expM)
		if err != nil {
			return nil, fmt.Errorf("pow: exp: %w", err)
		}
		return PowOf(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if !elementary[name] {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		argM, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		arg, err := FromJSON(argM)
		if err != nil {
			return nil, fmt.Errorf("func: arg: %w", err)
		}
		return funcOf(name, arg).Simplify(), nil

	case "function":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		rawArgs, err := subArray("args")
		if err != nil {
			return nil, err
		}
		if len(rawArgs) == 0 {
			return nil, fmt.Errorf("function: %q needs at least one argument", name)
		}
		args := make([]string, len(rawArgs))
		for i, a := range rawArgs {
			s, ok := a.(string)
			if !ok || s == "" {
				return nil, fmt.Errorf("function: args[%d] must be a non-empty string", i)
			}
			args[i] = s
		}
		f := Fn(name, args...)
		if _, present := data["order"]; !present {
			return f, nil
		}
		rawOrder, err := subArray("order")
		if err != nil {
			return nil, err
		}
		if len(rawOrder) != len(args) {
			return nil, fmt.Errorf("function: order has %d entries for %d args", len(rawOrder), len(args))
		}
		for i, o := range rawOrder {
			n, ok := o.(float64)
			if !ok || n < 0 || n != float64(int(n)) {
				return nil, fmt.Errorf("function: order[%d] must be a non-negative integer", i)
			}
			f.order[i] = int(n)
		}
		return f, nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}
