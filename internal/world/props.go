package world

import "github.com/hosler/pyreborn-go/internal/property"

// ApplyProps merges a decoded property stream into p, honoring the
// coordinate-synchronization invariant via the X/Y and X2/Y2 setters
// (spec §3, §4.5) rather than assigning the raw fields directly.
func (p *Player) ApplyProps(props property.Props) {
	if props.Nickname != nil {
		p.Nickname = *props.Nickname
	}
	if props.MaxPower != nil {
		p.MaxPower = *props.MaxPower
	}
	if props.CurPower != nil {
		p.CurPower = *props.CurPower
	}
	if props.Rupees != nil {
		p.Rupees = *props.Rupees
	}
	if props.Arrows != nil {
		p.Arrows = *props.Arrows
	}
	if props.Bombs != nil {
		p.Bombs = *props.Bombs
	}
	if props.GlovePower != nil {
		p.GlovePower = *props.GlovePower
	}
	if props.BombPower != nil {
		p.BombPower = *props.BombPower
	}
	if props.ShieldPower != nil {
		p.ShieldPower = *props.ShieldPower
	}
	if props.SwordPower != nil {
		p.SwordImage = props.SwordPower.Image
		p.SwordPower = props.SwordPower.Power
	}
	if props.Gani != nil {
		p.Gani = *props.Gani
	}
	if props.Headgif != nil {
		p.HeadImage = *props.Headgif
	}
	if props.CurChat != nil {
		p.CurChat = *props.CurChat
	}
	if props.Colors != nil {
		p.Colors = *props.Colors
	}
	if props.PlayerID != nil {
		p.ID = *props.PlayerID
	}
	if props.GmapLevelX != nil {
		p.GmapLevelX = props.GmapLevelX
	}
	if props.GmapLevelY != nil {
		p.GmapLevelY = props.GmapLevelY
	}
	// X/Y and X2/Y2 go through the synchronizing setters, and only after
	// the segment indices above are in place.
	switch {
	case props.X != nil && props.Y != nil:
		p.SetLocalXY(*props.X, *props.Y)
	case props.X != nil:
		p.SetLocalXY(*props.X, p.Y)
	case props.Y != nil:
		p.SetLocalXY(p.X, *props.Y)
	}
	if props.X2 != nil && props.Y2 != nil {
		p.SetHighPrecisionXY(*props.X2, *props.Y2)
	}
	if props.Z2 != nil {
		p.Z2 = props.Z2
	}
	if props.Sprite != nil {
		p.Sprite = *props.Sprite
	}
	if props.Status != nil {
		p.Status = *props.Status
	}
	if props.CarrySprite != nil {
		p.CarrySprite = *props.CarrySprite
	}
	if props.CurLevel != nil {
		p.CurLevel = *props.CurLevel
	}
	if props.PlayerListCategory != nil {
		p.PlayerListCategory = *props.PlayerListCategory
	}
	if props.CommunityName != nil {
		p.CommunityName = *props.CommunityName
	}
	if props.OSType != nil {
		p.OSType = *props.OSType
	}
	if props.TextCodePage != nil {
		p.TextCodePage = *props.TextCodePage
	}
	for i, s := range props.GAttrib {
		if s != nil {
			p.GAttrib[i] = *s
		}
	}
}
