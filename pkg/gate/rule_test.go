package gate

import "testing"

func TestResolvePrecedence(t *testing.T) {
	activeSys := &System{Key: "stories", Name: "Stories", IsVisible: true, IsEnabled: true}
	hiddenSys := &System{Key: "stories", Name: "Stories", IsVisible: false, IsEnabled: true}
	disabledSys := &System{Key: "checkbook", Name: "Checkbook", IsVisible: true, IsEnabled: false}
	offSys := &System{Key: "districts", Name: "Districts", IsVisible: false, IsEnabled: false}

	tests := []struct {
		name         string
		rule         Rule
		wantVisible  bool
		wantFeatures int
	}{
		{
			name:        "no rule defaults to allow",
			rule:        Rule{Kind: NoRule},
			wantVisible: true,
		},
		{
			name:        "system rule active",
			rule:        Rule{Kind: SystemMatch, System: activeSys},
			wantVisible: true,
		},
		{
			name:        "system rule hidden but functional still denies pages",
			rule:        Rule{Kind: SystemMatch, System: hiddenSys},
			wantVisible: false,
		},
		{
			name:        "system rule disabled wins over visible",
			rule:        Rule{Kind: SystemMatch, System: disabledSys},
			wantVisible: false,
		},
		{
			name:        "system rule fully disabled",
			rule:        Rule{Kind: SystemMatch, System: offSys},
			wantVisible: false,
		},
		{
			name:        "route visible under active system",
			rule:        Rule{Kind: RouteMatch, Route: &RouteRule{Path: "/stories/new", IsVisible: true, System: activeSys}},
			wantVisible: true,
		},
		{
			name:        "route override denies even under active system",
			rule:        Rule{Kind: RouteMatch, Route: &RouteRule{Path: "/stories/new", IsVisible: false, System: activeSys}},
			wantVisible: false,
		},
		{
			name:        "route visible but system disabled denies",
			rule:        Rule{Kind: RouteMatch, Route: &RouteRule{Path: "/checkbook/detail", IsVisible: true, System: disabledSys}},
			wantVisible: false,
		},
		{
			name:        "dangling system reference falls back to route flag alone",
			rule:        Rule{Kind: RouteMatch, Route: &RouteRule{Path: "/orphan", IsVisible: true, System: nil}},
			wantVisible: true,
		},
		{
			name:        "dangling system reference still honors route deny",
			rule:        Rule{Kind: RouteMatch, Route: &RouteRule{Path: "/orphan", IsVisible: false, System: nil}},
			wantVisible: false,
		},
		{
			name: "capabilities collected from route and system",
			rule: Rule{Kind: RouteMatch, Route: &RouteRule{
				Path: "/pro/export", IsVisible: true, RequiresFeature: "export",
				System: &System{IsVisible: true, IsEnabled: true, RequiresFeature: "pro"},
			}},
			wantVisible:  true,
			wantFeatures: 2,
		},
		{
			name:         "capability collected from system rule",
			rule:         Rule{Kind: SystemMatch, System: &System{IsVisible: true, IsEnabled: true, RequiresFeature: "pro"}},
			wantVisible:  true,
			wantFeatures: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.rule.Resolve()
			if v.Visible != tt.wantVisible {
				t.Errorf("Visible = %v, want %v", v.Visible, tt.wantVisible)
			}
			if len(v.RequiredFeatures) != tt.wantFeatures {
				t.Errorf("RequiredFeatures = %d, want %d", len(v.RequiredFeatures), tt.wantFeatures)
			}
		})
	}
}

func TestSystemState(t *testing.T) {
	tests := []struct {
		visible bool
		enabled bool
		want    SystemState
	}{
		{true, true, StateActive},
		{false, true, StateHiddenButFunctional},
		{true, false, StateDisabledButVisible},
		{false, false, StateFullyDisabled},
	}

	for _, tt := range tests {
		s := &System{IsVisible: tt.visible, IsEnabled: tt.enabled}
		if got := s.State(); got != tt.want {
			t.Errorf("State(visible=%v enabled=%v) = %q, want %q", tt.visible, tt.enabled, got, tt.want)
		}
		if s.Active() != (tt.want == StateActive) {
			t.Errorf("Active(visible=%v enabled=%v) = %v", tt.visible, tt.enabled, s.Active())
		}
	}
}

func TestOwningSystem(t *testing.T) {
	sys := &System{Key: "stories", Name: "Stories"}

	if got := (Rule{Kind: NoRule}).OwningSystem(); got != nil {
		t.Errorf("NoRule OwningSystem = %v, want nil", got)
	}
	if got := (Rule{Kind: SystemMatch, System: sys}).OwningSystem(); got != sys {
		t.Errorf("SystemMatch OwningSystem = %v, want %v", got, sys)
	}
	if got := (Rule{Kind: RouteMatch, Route: &RouteRule{System: sys}}).OwningSystem(); got != sys {
		t.Errorf("RouteMatch OwningSystem = %v, want %v", got, sys)
	}
	if got := (Rule{Kind: RouteMatch, Route: &RouteRule{}}).OwningSystem(); got != nil {
		t.Errorf("dangling RouteMatch OwningSystem = %v, want nil", got)
	}
}
