package packet

// Direction classifies a packet descriptor by who sends it.
type Direction int

const (
	ServerToClient Direction = iota
	ClientToServer
)

// Category groups packets for registry introspection (spec §4.4).
type Category int

const (
	CategoryCore Category = iota
	CategoryMovement
	CategoryCombat
	CategoryFiles
	CategorySystem
	CategoryUI
	CategoryNPCs
)

// Inbound (server→client) packet ids, spec §4.4.
const (
	IDLevelBoard      = 0
	IDLevelLink       = 1
	IDBaddyProps      = 2
	IDNpcProps        = 3
	IDLevelChest      = 4
	IDLevelSign       = 5
	IDLevelName       = 6
	IDBoardModify     = 7
	IDOtherPlProps    = 8
	IDPlayerProps     = 9
	IDIsLeader        = 10
	IDBombAdd         = 11
	IDBombDel         = 12
	IDToAll           = 13
	IDPlayerWarp      = 14
	IDWarpFailed      = 15
	IDDiscMessage     = 16
	IDHorseAdd        = 17
	IDHorseDel        = 18
	IDArrowAdd        = 19
	IDFireSpy         = 20
	IDThrownCarried   = 21
	IDItemAdd         = 22
	IDItemDel         = 23
	IDNpcMoved        = 24
	IDSignature       = 25
	IDNpcAction       = 26
	IDBaddyHurt       = 27
	IDFlagSet         = 28
	IDNpcDel          = 29
	IDFileSendFailed  = 30
	IDFlagDel         = 31
	IDShowImg         = 32
	IDNpcWeaponAdd    = 33
	IDNpcWeaponDel    = 34
	IDRcAdminMessage  = 35
	IDExplosion       = 36
	IDPrivateMessage  = 37
	IDPushAway        = 38
	IDLevelModTime    = 39
	IDHurtPlayer      = 40
	IDStartMessage    = 41
	IDNewWorldTime    = 42
	IDDefaultWeapon   = 43
	IDHasNpcServer    = 44
	IDFileUpToDate    = 45
	IDHitObjects      = 46
	IDStaffGuilds     = 47
	IDTriggerAction   = 48
	IDPlayerWarp2     = 49 // aka gmapwarp
	IDRawData         = 100
	IDBoardPacket     = 101
	IDFile            = 102
	IDGhostMode       = 170
	IDBigMap          = 171
	IDMiniMap         = 172
	IDServerWarp      = 178
	IDMove2           = 189
	IDShoot2          = 191
)

// Outbound (client→server) packet ids, spec §4.4.
const (
	IDOutLogin              = 2
	IDOutPlayerProps        = 9
	IDOutPlayerWarp         = 14 // same id as the inbound playerwarp packet
	IDOutToAll              = 50
	IDOutPrivateMessage     = 51
	IDOutBombAdd            = 53
	IDOutArrowAdd           = 54
	IDOutFireSpy            = 55
	IDOutWantFile           = 56
	IDOutFlagSet            = 58
	IDOutRequestUpdateBoard = 130
	IDOutRequestText        = 152
	IDOutSendText           = 154
)
