package bitchess

// GenerateMoves enumerates legal moves for the side to move, streaming them
// as PieceMoves batches to listener. listener may return true to abort
// early; GenerateMoves then returns true. It returns false if the listener
// never aborted. Each PieceMoves batch is non-empty. The listener is called
// at most ~18 times per invocation (one batch per piece-kind/pin-status
// sub-category that produced at least one move, plus at most one extra
// batch per en-passant-capturing pawn).
//
// Ordering across piece kinds (pawn, knight, bishop, rook, queen, king) and
// within a kind (least-significant-square first) is not a correctness
// contract; callers must treat the sequence as unordered.
func (p *Position) GenerateMoves(listener func(PieceMoves) bool) bool {
	us := p.board.SideToMove()
	them := us.Other()
	king := p.King(us)
	occupied := p.board.Occupied()

	switch p.checkers.Popcount() {
	case 0:
		return p.addAllLegals(listener, false, NoSquare, us, them, king, occupied)
	case 1:
		checker := p.checkers.NextSquare()
		return p.addAllLegals(listener, true, checker, us, them, king, occupied)
	default:
		return p.addKingLegals(listener, true, NoSquare, us, them, king, occupied)
	}
}

// TryGenerateMoves is the non-panicking variant of GenerateMoves: it returns
// ErrInvalidBoard when the side to move has no king instead of panicking.
func (p *Position) TryGenerateMoves(listener func(PieceMoves) bool) (bool, error) {
	if _, err := p.TryKing(p.board.SideToMove()); err != nil {
		return false, err
	}
	return p.GenerateMoves(listener), nil
}

// HasLegalMove reports whether the side to move has at least one legal
// move, without materializing the full move list.
func (p *Position) HasLegalMove() bool {
	found := false
	p.GenerateMoves(func(PieceMoves) bool {
		found = true
		return true
	})
	return found
}

// IsLegal reports whether m is a legal move in this position.
func (p *Position) IsLegal(m Move) bool {
	legal := false
	p.GenerateMoves(func(pm PieceMoves) bool {
		if pm.From != m.From || !pm.To.Has(m.To) {
			return false
		}
		if pm.Piece == Pawn && backRanksMask.Has(m.To) {
			legal = m.Promotion == Knight || m.Promotion == Bishop || m.Promotion == Rook || m.Promotion == Queen
		} else {
			legal = m.Promotion == NoPiece
		}
		return legal
	})
	return legal
}

func targetMask(inCheck bool, checker, king Square, us *Position) BitBoard {
	var mask BitBoard
	if inCheck {
		mask = Between(checker, king) | checker.BitBoard()
	} else {
		mask = All
	}
	return mask &^ us.board.Colors(us.board.SideToMove())
}

func (p *Position) addAllLegals(listener func(PieceMoves) bool, inCheck bool, checker Square, us, them Color, king Square, occupied BitBoard) bool {
	mask := targetMask(inCheck, checker, king, p)
	if p.addPawnLegals(listener, inCheck, checker, mask, us, them, king, occupied) {
		return true
	}
	if p.addKnightLegals(listener, mask, us, king) {
		return true
	}
	if p.addSliderLegals(listener, Bishop, mask, us, king, occupied) {
		return true
	}
	if p.addSliderLegals(listener, Rook, mask, us, king, occupied) {
		return true
	}
	if p.addSliderLegals(listener, Queen, mask, us, king, occupied) {
		return true
	}
	return p.addKingLegals(listener, inCheck, checker, us, them, king, occupied)
}

// addSliderLegals handles bishop, rook and queen uniformly: each is a
// "slider" identified only by which attack-table function produces its
// pseudo-legal moves. Non-pinned sliders get pseudo_legals & target mask;
// pinned sliders are further restricted to the pin ray, which leaves them
// no moves while in check.
func (p *Position) addSliderLegals(listener func(PieceMoves) bool, piece Piece, mask BitBoard, us Color, king Square, occupied BitBoard) bool {
	sliderAttacks := func(sq Square) BitBoard {
		switch piece {
		case Bishop:
			return BishopAttacks(sq, occupied)
		case Rook:
			return RookAttacks(sq, occupied)
		default:
			return QueenAttacks(sq, occupied)
		}
	}

	pieces := p.board.Pieces(piece) & p.board.Colors(us)
	nonPinned := pieces &^ p.pinned
	for bb := nonPinned; bb != Empty; {
		sq := bb.PopLSB()
		to := sliderAttacks(sq) & mask
		if to != Empty {
			if listener(PieceMoves{Piece: piece, From: sq, To: to}) {
				return true
			}
		}
	}
	for bb := pieces & p.pinned; bb != Empty; {
		sq := bb.PopLSB()
		to := sliderAttacks(sq) & mask & Line(king, sq)
		if to != Empty {
			if listener(PieceMoves{Piece: piece, From: sq, To: to}) {
				return true
			}
		}
	}
	return false
}

// addKnightLegals: a pinned knight can never legally move (no knight move
// stays on a pin ray), so pinned knights are skipped entirely rather than
// restricted.
func (p *Position) addKnightLegals(listener func(PieceMoves) bool, mask BitBoard, us Color, king Square) bool {
	knights := p.board.Pieces(Knight) & p.board.Colors(us) &^ p.pinned
	for bb := knights; bb != Empty; {
		sq := bb.PopLSB()
		to := KnightAttacks(sq) & mask
		if to != Empty {
			if listener(PieceMoves{Piece: Knight, From: sq, To: to}) {
				return true
			}
		}
	}
	return false
}

func (p *Position) addPawnLegals(listener func(PieceMoves) bool, inCheck bool, checker Square, mask BitBoard, us, them Color, king Square, occupied BitBoard) bool {
	pawns := p.board.Pieces(Pawn) & p.board.Colors(us)
	enemy := p.board.Colors(them)

	genFor := func(sq Square, restrictLine bool) BitBoard {
		var to BitBoard
		fr := sq.Rank().RelativeTo(us)
		fwdRank := fr + 1
		if fwdRank <= Rank8 {
			single := NewSquare(sq.File(), fwdRank.RelativeTo(us))
			if !occupied.Has(single) {
				to |= single.BitBoard()
				if fr == Rank2 {
					double := NewSquare(sq.File(), Rank4.RelativeTo(us))
					if !occupied.Has(double) {
						to |= double.BitBoard()
					}
				}
			}
		}
		to |= PawnAttacks(us, sq) & enemy
		to &= mask
		if restrictLine {
			to &= Line(king, sq)
		}
		return to
	}

	for bb := pawns &^ p.pinned; bb != Empty; {
		sq := bb.PopLSB()
		to := genFor(sq, false)
		if to != Empty {
			if listener(PieceMoves{Piece: Pawn, From: sq, To: to}) {
				return true
			}
		}
	}
	if !inCheck {
		for bb := pawns & p.pinned; bb != Empty; {
			sq := bb.PopLSB()
			to := genFor(sq, true)
			if to != Empty {
				if listener(PieceMoves{Piece: Pawn, From: sq, To: to}) {
					return true
				}
			}
		}
	}

	return p.addEnPassantLegals(listener, inCheck, checker, mask, us, them, king, occupied)
}

// addEnPassantLegals handles the en-passant special case: each candidate
// capturing pawn is verified independently by simulating the capture (both
// pawns removed, capturer placed on the destination) and checking whether
// the resulting blocker configuration exposes our king to a rook/queen or
// bishop/queen along a rank or diagonal — the classic "horizontal/diagonal
// discovered check" en-passant bug. A cheap "is there such a slider on the
// relevant ray at all" test runs before the magic lookup.
func (p *Position) addEnPassantLegals(listener func(PieceMoves) bool, inCheck bool, checker Square, mask BitBoard, us, them Color, king Square, occupied BitBoard) bool {
	ep := p.board.EnPassant()
	if !ep.Present {
		return false
	}
	destSquare := NewSquare(ep.File, Rank6.RelativeTo(us))
	victimSquare := NewSquare(ep.File, Rank5.RelativeTo(us))

	if inCheck && !mask.Has(destSquare) && checker != victimSquare {
		return false
	}

	attackers := PawnAttacks(them, destSquare) & p.board.Pieces(Pawn) & p.board.Colors(us)
	for bb := attackers; bb != Empty; {
		from := bb.PopLSB()
		if p.pinned.Has(from) && !Line(king, from).Has(destSquare) {
			continue
		}
		simulated := (occupied &^ from.BitBoard() &^ victimSquare.BitBoard()) | destSquare.BitBoard()
		theirSliders := p.board.Colors(them) & (p.board.Pieces(Bishop) | p.board.Pieces(Rook) | p.board.Pieces(Queen))
		exposed := false
		if (BishopRays(king) & theirSliders & (p.board.Pieces(Bishop) | p.board.Pieces(Queen))) != Empty {
			if BishopAttacks(king, simulated)&p.board.Colors(them)&(p.board.Pieces(Bishop)|p.board.Pieces(Queen)) != Empty {
				exposed = true
			}
		}
		if !exposed && (RookRays(king)&theirSliders&(p.board.Pieces(Rook)|p.board.Pieces(Queen))) != Empty {
			if RookAttacks(king, simulated)&p.board.Colors(them)&(p.board.Pieces(Rook)|p.board.Pieces(Queen)) != Empty {
				exposed = true
			}
		}
		if exposed {
			continue
		}
		if listener(PieceMoves{Piece: Pawn, From: from, To: destSquare.BitBoard()}) {
			return true
		}
	}
	return false
}

func (p *Position) addKingLegals(listener func(PieceMoves) bool, inCheck bool, checker Square, us, them Color, king Square, occupied BitBoard) bool {
	occupiedNoKing := occupied &^ king.BitBoard()
	var to BitBoard
	for dests := KingAttacks(king) &^ p.board.Colors(us); dests != Empty; {
		sq := dests.PopLSB()
		if kingSafeOn(p, us, sq, occupiedNoKing) {
			to |= sq.BitBoard()
		}
	}

	if !inCheck {
		to |= p.castlingDestinations(us, king, occupied)
	}
	_ = checker

	if to != Empty {
		return listener(PieceMoves{Piece: King, From: king, To: to})
	}
	return false
}

// castlingDestinations returns the rook squares (king-captures-own-rook
// encoding) of every currently-legal castle for us: the rook must not be
// pinned, the squares the king and rook cross (other than their own) must be
// vacant, and the king's whole path, destination included, must be safe.
func (p *Position) castlingDestinations(us Color, king Square, occupied BitBoard) BitBoard {
	var dests BitBoard
	rights := p.board.CastleRights(us)
	backRank := king.Rank()

	tryCastle := func(rookFile OptionalFile, kingDestFile, rookDestFile File) {
		if !rookFile.Present {
			return
		}
		rook := NewSquare(rookFile.File, backRank)
		if p.pinned.Has(rook) {
			return
		}
		kingDest := NewSquare(kingDestFile, backRank)
		rookDest := NewSquare(rookDestFile, backRank)

		mustBeEmpty := (Between(king, rook) | Between(king, kingDest) | kingDest.BitBoard() | rookDest.BitBoard()) &^ king.BitBoard() &^ rook.BitBoard()
		if occupied&^(king.BitBoard()|rook.BitBoard())&mustBeEmpty != Empty {
			return
		}
		mustBeSafe := kingDest.BitBoard() | Between(king, kingDest)
		occupiedNoKing := occupied &^ king.BitBoard()
		for sq := mustBeSafe; sq != Empty; {
			s := sq.PopLSB()
			if !kingSafeOn(p, us, s, occupiedNoKing) {
				return
			}
		}
		dests |= rook.BitBoard()
	}

	tryCastle(rights.Short, FileG, FileF)
	tryCastle(rights.Long, FileC, FileD)
	return dests
}
