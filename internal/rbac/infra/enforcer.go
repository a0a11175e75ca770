package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// NewEnforcer membangun enforcer dari model bawaan. Bila modelPath diisi, model dibaca dari file.
func NewEnforcer(modelPath ...string) (*casbin.Enforcer, error) {
	if len(modelPath) > 0 && modelPath[0] != "" {
		return casbin.NewEnforcer(modelPath[0])
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
